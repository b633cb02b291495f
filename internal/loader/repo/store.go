// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repo manages the local recipe repository, optionally mirrored
// from a remote git repository.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goplus/recipe/internal/env"
	"github.com/goplus/recipe/internal/loader"
	"github.com/goplus/recipe/internal/vcs"
)

// DefaultRef is the branch of the remote recipe repository that is synced.
const DefaultRef = "main"

// Store manages a recipe repository, handling storage layout and synchronization.
type Store struct {
	dir    string
	vcs    vcs.VCS
	remote string
	ref    string

	syncOnce sync.Once
	syncErr  error
}

// New creates a Store of the recipe repository in dir. If remote is not
// empty, dir mirrors the DefaultRef branch of remote using v.
func New(dir string, v vcs.VCS, remote string) *Store {
	return &Store{dir: dir, vcs: v, remote: remote, ref: DefaultRef}
}

// Dir returns the local directory of the repository.
func (s *Store) Dir() string {
	return s.dir
}

// Sync brings the local repository up to date with the remote. It syncs
// at most once per Store and is a no-op without a remote.
func (s *Store) Sync(ctx context.Context) error {
	s.syncOnce.Do(func() {
		if s.remote == "" {
			return
		}
		slog.Debug("sync recipe repository", "remote", s.remote, "ref", s.ref, "dir", s.dir)
		if err := env.MkdirAll(s.dir); err != nil {
			s.syncErr = err
			return
		}
		if err := s.vcs.Sync(ctx, s.remote, s.ref, s.dir); err != nil {
			s.syncErr = fmt.Errorf("sync recipe repository %s: %w", s.remote, err)
		}
	})
	return s.syncErr
}

// Find syncs the repository and returns the recipe of id serving version.
func (s *Store) Find(ctx context.Context, id, version string) (*loader.Recipe, error) {
	if err := s.Sync(ctx); err != nil {
		return nil, err
	}
	return loader.Find(s.dir, id, version)
}

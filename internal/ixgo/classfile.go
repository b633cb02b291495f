// Copyright 2024 The llar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ixgo registers the recipe classfile and the packages recipe
// classfiles may use with the ixgo interpreter. Import it for side effects.
package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/goplus/recipe/recipe"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/goplus/recipe/x/autotools"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/goplus/recipe/x/gnu"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/github.com/qiniu/x/gsh"
	_ "github.com/goplus/recipe/internal/ixgo/pkg/golang.org/x/mod/semver"
)

// Ext is the file name suffix of recipe classfiles.
const Ext = "_recipe.gox"

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   Ext,
		Class: "RecipeF",
		PkgPaths: []string{
			"github.com/goplus/recipe/recipe",
		},
		Import: []*modfile.Import{
			{
				Name: "autotools",
				Path: "github.com/goplus/recipe/x/autotools",
			},
			{
				Name: "gnu",
				Path: "github.com/goplus/recipe/x/gnu",
			},
			{
				Name: "semver",
				Path: "golang.org/x/mod/semver",
			},
		},
	})
}

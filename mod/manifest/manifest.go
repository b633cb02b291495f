// Package manifest parses and writes recipe.yaml, the declarative form of
// a recipe.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goplus/recipe/mod/module"
	"github.com/goplus/recipe/recipe"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional name of a manifest file.
const FileName = "recipe.yaml"

// Manifest is the content of a recipe.yaml file.
type Manifest struct {
	ID            string   `yaml:"id"`
	FromVer       string   `yaml:"fromVer,omitempty"`
	BuildRequires []string `yaml:"buildRequires,omitempty"` // "name/version" references
	Build         string   `yaml:"build"`                   // command line, split on whitespace
}

// Parse reads and parses a manifest from either provided data or a file path.
// If data is non-nil, it is used directly and the file parameter is ignored.
func Parse(file string, data []byte) (*Manifest, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewReader(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	var m Manifest
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty manifest", file)
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return &m, nil
}

// Recipe converts the manifest into a Recipe.
func (m *Manifest) Recipe() (*recipe.Recipe, error) {
	opts := make([]recipe.Option, 0, len(m.BuildRequires)+1)
	for _, ref := range m.BuildRequires {
		req, err := module.ParseRef(ref)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", m.ID, err)
		}
		opts = append(opts, recipe.Require(req.Path, req.Version))
	}
	args := strings.Fields(m.Build)
	if len(args) > 0 {
		opts = append(opts, recipe.Run(args[0], args[1:]...))
	}
	return recipe.New(m.ID, m.FromVer, opts...)
}

// FromRecipe returns the manifest of r. It fails for recipes whose build
// action is a custom function rather than a command.
func FromRecipe(r *recipe.Recipe) (*Manifest, error) {
	if r.Command() == "" {
		return nil, fmt.Errorf("recipe %s: build action is not a command", r.ID())
	}
	m := &Manifest{
		ID:      r.ID(),
		FromVer: r.FromVer(),
		Build:   r.Command(),
	}
	for _, req := range r.BuildRequirements() {
		m.BuildRequires = append(m.BuildRequires, req.String())
	}
	return m, nil
}

// Marshal encodes m as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes m to file, failing if file already exists.
func Write(file string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package loader

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/xgo/ast"
	"github.com/goplus/xgo/parser"
	"github.com/goplus/xgo/token"

	"github.com/goplus/recipe/recipe"

	rixgo "github.com/goplus/recipe/internal/ixgo"
)

// classMain is implemented by every class the interpreter builds from a
// recipe classfile.
type classMain interface {
	Main()
}

// classFile is the only entry of a classFS.
type classFile struct {
	name string
	data []byte
}

func (f classFile) Name() string       { return f.name }
func (f classFile) Size() int64        { return int64(len(f.data)) }
func (f classFile) Mode() fs.FileMode  { return 0o444 }
func (f classFile) ModTime() time.Time { return time.Time{} }
func (f classFile) IsDir() bool        { return false }
func (f classFile) Sys() any           { return nil }

// classFS is a parser.FileSystem holding a single classfile. Building it as
// a directory lets the parser resolve the recipe project from the class
// extension of the file name.
type classFS struct {
	file classFile
}

func (p classFS) ReadDir(dirname string) ([]fs.DirEntry, error) {
	return []fs.DirEntry{fs.FileInfoToDirEntry(p.file)}, nil
}

func (p classFS) ReadFile(filename string) ([]byte, error) {
	if path.Base(filename) != p.file.name {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
	}
	return p.file.data, nil
}

func (p classFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (p classFS) Base(filename string) string {
	return path.Base(filename)
}

func (p classFS) Abs(name string) (string, error) {
	return path.Join("/", name), nil
}

// loadClassFS builds and interprets the classfile at name in fsys and
// converts the callbacks it registered into a Recipe.
func loadClassFS(fsys fs.ReadFileFS, name string) (*Recipe, error) {
	base := filepath.Base(name)
	structName, ok := strings.CutSuffix(base, rixgo.Ext)
	if !ok || structName == "" || strings.HasPrefix(base, "_") {
		return nil, fmt.Errorf("failed to load recipe: file name is not valid: %s", name)
	}
	content, err := fsys.ReadFile(name)
	if err != nil {
		return nil, err
	}

	ctx := ixgo.NewContext(0)
	source, err := xgobuild.BuildFSDir(ctx, classFS{classFile{base, content}}, ".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err = interp.RunInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	typ, ok := interp.GetType(structName)
	if !ok {
		return nil, fmt.Errorf("failed to load recipe: struct name not found: %s", structName)
	}
	val := reflect.New(typ)
	val.Interface().(classMain).Main()
	class := val.Elem()

	r, err := recipe.FromClass(
		valueOf(class, "modPath").(string),
		valueOf(class, "modFromVer").(string),
		valueOf(class, "fOnRequire").(func(*recipe.Requirements)),
		valueOf(class, "fOnBuild").(func(*recipe.Context)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Recipe{Recipe: r, File: name, class: class}, nil
}

// FromVerOf extracts the fromVer of a recipe classfile by parsing its AST,
// without running it.
func FromVerOf(path string, src any) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseEntry(fset, path, src, parser.Config{
		ClassKind: xgobuild.ClassKind,
	})
	if err != nil {
		return "", err
	}
	return fromVerFrom(f)
}

// fromVerFrom finds the first fromVer call in f and returns its argument.
func fromVerFrom(f *ast.File) (fromVer string, err error) {
	found := false
	ast.Inspect(f, func(n ast.Node) bool {
		if found {
			return false
		}
		c, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if fn, ok := c.Fun.(*ast.Ident); ok && fn.Name == "fromVer" {
			found = true
			fromVer, err = parseCallArg(c, fn.Name)
			return false
		}
		return true
	})
	if !found && err == nil {
		err = fmt.Errorf("failed to parse fromVer from AST: no fromVer call")
	}
	return
}

// parseCallArg extracts the first string argument from a call expression.
func parseCallArg(c *ast.CallExpr, fnName string) (string, error) {
	if len(c.Args) == 0 {
		return "", fmt.Errorf("failed to parse %s from AST: no argument", fnName)
	}
	arg, ok := c.Args[0].(*ast.BasicLit)
	if !ok || arg.Kind != token.STRING {
		return "", fmt.Errorf("failed to parse %s from AST: argument is not a string literal", fnName)
	}
	v := strings.Trim(strings.Trim(arg.Value, `"`), "`")
	if v == "" {
		return "", fmt.Errorf("failed to parse %s from AST: empty argument", fnName)
	}
	return v, nil
}

// SetStdout sets the stdout writer of a classfile recipe's gsh.App.
// It has no effect on manifest recipes.
func (r *Recipe) SetStdout(w io.Writer) {
	if r.class.IsValid() {
		setValue(r.class, "fout", w)
	}
}

// SetStderr sets the stderr writer of a classfile recipe's gsh.App.
func (r *Recipe) SetStderr(w io.Writer) {
	if r.class.IsValid() {
		setValue(r.class, "ferr", w)
	}
}

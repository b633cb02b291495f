// export by github.com/goplus/ixgo/cmd/qexp

package recipe

import (
	q "github.com/goplus/recipe/recipe"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "recipe",
		Path: "github.com/goplus/recipe/recipe",
		Deps: map[string]string{
			"context":                             "context",
			"errors":                              "errors",
			"fmt":                                 "fmt",
			"github.com/goplus/recipe/mod/module": "module",
			"github.com/qiniu/x/gsh":              "gsh",
			"io":                                  "io",
			"log/slog":                            "slog",
			"os":                                  "os",
			"os/exec":                             "exec",
			"slices":                              "slices",
			"strings":                             "strings",
			"sync":                                "sync",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"BuildFailure": reflect.TypeOf((*q.BuildFailure)(nil)).Elem(),
			"BuildOption":  reflect.TypeOf((*q.BuildOption)(nil)).Elem(),
			"Context":      reflect.TypeOf((*q.Context)(nil)).Elem(),
			"Option":       reflect.TypeOf((*q.Option)(nil)).Elem(),
			"Recipe":       reflect.TypeOf((*q.Recipe)(nil)).Elem(),
			"RecipeF":      reflect.TypeOf((*q.RecipeF)(nil)).Elem(),
			"Requirements": reflect.TypeOf((*q.Requirements)(nil)).Elem(),
			"Session":      reflect.TypeOf((*q.Session)(nil)).Elem(),
			"State":        reflect.TypeOf((*q.State)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars: map[string]reflect.Value{
			"ErrBuildFailure": reflect.ValueOf(&q.ErrBuildFailure),
			"ErrSessionDone":  reflect.ValueOf(&q.ErrSessionDone),
		},
		Funcs: map[string]reflect.Value{
			"FromClass":         reflect.ValueOf(q.FromClass),
			"Gopt_RecipeF_Main": reflect.ValueOf(q.Gopt_RecipeF_Main),
			"MustNew":           reflect.ValueOf(q.MustNew),
			"New":               reflect.ValueOf(q.New),
			"OnBuild":           reflect.ValueOf(q.OnBuild),
			"Require":           reflect.ValueOf(q.Require),
			"Run":               reflect.ValueOf(q.Run),
			"WithEnviron":       reflect.ValueOf(q.WithEnviron),
			"WithOutput":        reflect.ValueOf(q.WithOutput),
		},
		TypedConsts: map[string]ixgo.TypedConst{
			"Built":    {reflect.TypeOf(q.Built), constant.MakeInt64(int64(q.Built))},
			"Declared": {reflect.TypeOf(q.Declared), constant.MakeInt64(int64(q.Declared))},
			"Failed":   {reflect.TypeOf(q.Failed), constant.MakeInt64(int64(q.Failed))},
		},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"GopPackage": {"untyped bool", constant.MakeBool(bool(q.GopPackage))},
		},
	})
}

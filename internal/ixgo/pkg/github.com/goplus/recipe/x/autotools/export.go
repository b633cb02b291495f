// export by github.com/goplus/ixgo/cmd/qexp

package autotools

import (
	q "github.com/goplus/recipe/x/autotools"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "autotools",
		Path: "github.com/goplus/recipe/x/autotools",
		Deps: map[string]string{
			"github.com/goplus/recipe/recipe": "recipe",
			"os":                              "os",
			"path/filepath":                   "filepath",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"AutoTools": reflect.TypeOf((*q.AutoTools)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"Bootstrap": reflect.ValueOf(q.Bootstrap),
			"Generated": reflect.ValueOf(q.Generated),
			"HasScript": reflect.ValueOf(q.HasScript),
			"New":       reflect.ValueOf(q.New),
		},
		TypedConsts: map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"Configure": {"untyped string", constant.MakeString(string(q.Configure))},
			"Script":    {"untyped string", constant.MakeString(string(q.Script))},
		},
	})
}

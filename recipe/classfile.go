package recipe

import (
	"slices"

	"github.com/goplus/recipe/mod/module"
	"github.com/qiniu/x/gsh"
)

const GopPackage = true

// -----------------------------------------------------------------------------

// RecipeF is the classfile form of a recipe (files named *_recipe.gox).
type RecipeF struct {
	gsh.App

	fOnRequire func(reqs *Requirements)
	fOnBuild   func(ctx *Context)

	modPath    string
	modFromVer string
}

func (p *RecipeF) app() *gsh.App {
	return &p.App
}

// Id sets the library id that this recipe serves.
// path should be in the form of "owner/repo".
func (p *RecipeF) Id(path string) {
	p.modPath = path
}

// FromVer sets the minimum library version that this recipe serves.
func (p *RecipeF) FromVer(ver string) {
	p.modFromVer = ver
}

// -----------------------------------------------------------------------------

// Requirements collects the build-time tool requirements of a recipe.
type Requirements struct {
	reqs []module.Version
}

// BuildRequire declares that building needs the tool name at exactly ver.
func (p *Requirements) BuildRequire(name, ver string) {
	p.reqs = append(p.reqs, module.Version{Path: name, Version: ver})
}

// Reqs returns the collected requirements.
func (p *Requirements) Reqs() []module.Version {
	return slices.Clone(p.reqs)
}

// OnRequire event is used to declare the build-time tools of the recipe.
func (p *RecipeF) OnRequire(f func(reqs *Requirements)) {
	p.fOnRequire = f
}

// OnBuild event is used to run the bootstrap action in the source root.
func (p *RecipeF) OnBuild(f func(ctx *Context)) {
	p.fOnBuild = f
}

// FromClass converts the callbacks collected by a classfile into a Recipe.
func FromClass(id, fromVer string, onRequire func(*Requirements), onBuild func(*Context)) (*Recipe, error) {
	var reqs Requirements
	if onRequire != nil {
		onRequire(&reqs)
	}
	opts := make([]Option, 0, len(reqs.reqs)+1)
	for _, req := range reqs.reqs {
		opts = append(opts, Require(req.Path, req.Version))
	}
	if onBuild != nil {
		opts = append(opts, OnBuild(onBuild))
	}
	return New(id, fromVer, opts...)
}

// -----------------------------------------------------------------------------

// Gopt_RecipeF_Main is main entry of this classfile.
func Gopt_RecipeF_Main(this interface {
	app() *gsh.App
	MainEntry()
}) {
	this.MainEntry()
	gsh.InitApp(this.app())
}

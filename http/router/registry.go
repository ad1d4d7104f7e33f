package router

import (
	"net/http"

	"github.com/xy-planning-network/crossweb/config"
)

// A Module is a handler module: a set of actions routes refer to as "Module.action".
type Module interface {
	Action(name string) (http.HandlerFunc, bool)
}

// Actions is a Module over a plain map.
type Actions map[string]http.HandlerFunc

func (a Actions) Action(name string) (http.HandlerFunc, bool) {
	h, ok := a[name]
	return h, ok && h != nil
}

// A Filter decides whether a request proceeds.
//
// Check returns the request the rest of the chain sees, which may carry new context values.
// When Check returns false or an error, Fail writes the response instead.
type Filter interface {
	Check(r *http.Request) (*http.Request, bool, error)
	Fail(w http.ResponseWriter, r *http.Request)
}

// A Setupper is a Module or Filter that needs the configuration before serving.
type Setupper interface {
	Setup(cfg *config.Config) error
}

type (
	ModuleFactory func() Module
	FilterFactory func() Filter
)

// A Registry resolves the names of handler modules and filters.
type Registry struct {
	filters map[string]FilterFactory
	modules map[string]ModuleFactory
}

func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string]FilterFactory),
		modules: make(map[string]ModuleFactory),
	}
}

// Filter registers the filter factory under name. A later call for the same name replaces it.
func (reg *Registry) Filter(name string, factory FilterFactory) {
	reg.filters[name] = factory
}

// Module registers the handler module factory under name. A later call for the same name replaces it.
func (reg *Registry) Module(name string, factory ModuleFactory) {
	reg.modules[name] = factory
}

func (reg *Registry) filter(name string) (Filter, bool) {
	factory, ok := reg.filters[name]
	if !ok || factory == nil {
		return nil, false
	}

	f := factory()
	return f, f != nil
}

func (reg *Registry) module(name string) (Module, bool) {
	factory, ok := reg.modules[name]
	if !ok || factory == nil {
		return nil, false
	}

	m := factory()
	return m, m != nil
}

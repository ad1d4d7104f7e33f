package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/logger"
)

// A Table is the resolved form of a configuration document:
// actions by lower-cased method and exact path, every module set up along the way,
// and the filters in the order they run.
type Table struct {
	Methods  map[string]map[string]http.HandlerFunc
	Handlers map[string]Module
	Filters  []Filter
}

// Add registers h for method and path, replacing whatever was registered before.
func (t *Table) Add(method, path string, h http.HandlerFunc) {
	if t.Methods == nil {
		t.Methods = make(map[string]map[string]http.HandlerFunc)
	}

	method = strings.ToLower(method)
	if t.Methods[method] == nil {
		t.Methods[method] = make(map[string]http.HandlerFunc)
	}

	t.Methods[method][path] = h
}

// Action is the action registered for method and path.
func (t Table) Action(method, path string) (http.HandlerFunc, bool) {
	h, ok := t.Methods[strings.ToLower(method)][path]
	return h, ok && h != nil
}

type builder struct {
	cfg    *config.Config
	failed map[string]bool
	log    logger.Logger
	reg    *Registry
	table  Table
}

// Build resolves cfg against reg in three passes:
//
//  1. every Initial module is set up, in order
//  2. every filter is constructed and set up, in order
//  3. every route is resolved to an action of its module, in declaration order
//
// A module is set up at most once, before its first action is registered.
// Entries that cannot be resolved are logged and skipped.
func Build(cfg *config.Config, reg *Registry, log logger.Logger) Table {
	if log == nil {
		log = logger.New()
	}

	b := &builder{
		cfg:    cfg,
		failed: make(map[string]bool),
		log:    log,
		reg:    reg,
		table: Table{
			Methods:  make(map[string]map[string]http.HandlerFunc),
			Handlers: make(map[string]Module),
			Filters:  make([]Filter, 0),
		},
	}

	if cfg == nil {
		return b.table
	}

	if reg == nil {
		b.reg = NewRegistry()
	}

	for _, name := range cfg.Initial {
		b.module(name)
	}

	for _, name := range cfg.Filters {
		b.filter(name)
	}

	for _, route := range cfg.Routes {
		b.route(route)
	}

	return b.table
}

func (b *builder) filter(name string) {
	f, ok := b.reg.filter(name)
	if !ok {
		b.fault(guard.ErrFilterLoadFailed, fmt.Sprintf("filter %s does not exist", name), nil)
		return
	}

	if s, ok := f.(Setupper); ok {
		if err := s.Setup(b.cfg); err != nil {
			b.fault(guard.ErrFilterLoadFailed, fmt.Sprintf("cannot set up filter %s", name), err)
			return
		}
	}

	b.table.Filters = append(b.table.Filters, f)
}

// module resolves name, setting it up the first time it is asked for.
func (b *builder) module(name string) (Module, bool) {
	if m, ok := b.table.Handlers[name]; ok {
		return m, true
	}

	if b.failed[name] {
		return nil, false
	}

	m, ok := b.reg.module(name)
	if !ok {
		b.failed[name] = true
		b.fault(guard.ErrRouteConfigInvalid, fmt.Sprintf("no handler %s", name), nil)
		return nil, false
	}

	if s, ok := m.(Setupper); ok {
		if err := s.Setup(b.cfg); err != nil {
			b.failed[name] = true
			b.fault(guard.ErrRouteConfigInvalid, fmt.Sprintf("cannot set up handler %s", name), err)
			return nil, false
		}
	}

	b.table.Handlers[name] = m
	return m, true
}

func (b *builder) route(route config.Route) {
	methods, path, err := route.Parse()
	if err != nil {
		b.fault(guard.ErrRouteConfigInvalid, fmt.Sprintf("invalid path %s", route.Key), err)
		return
	}

	name, action, err := route.Action()
	if err != nil {
		b.fault(guard.ErrRouteConfigInvalid, fmt.Sprintf("invalid handler for %s", route.Key), err)
		return
	}

	m, ok := b.module(name)
	if !ok {
		return
	}

	h, ok := m.Action(action)
	if !ok {
		b.fault(guard.ErrRouteConfigInvalid, fmt.Sprintf("handler %s has no method %s", name, action), nil)
		return
	}

	for _, method := range methods {
		b.table.Add(method, path, h)
	}
}

func (b *builder) fault(kind error, msg string, cause error) {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %s", kind, cause)
	}

	b.log.Error(msg, &logger.LogContext{Error: err})
}

package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/http/middleware"
	"github.com/xy-planning-network/crossweb/logger"
)

// Router dispatches requests through the filters and actions of a Table.
type Router struct {
	fallback http.Handler
	log      logger.Logger
	table    Table
}

// New constructs a *Router over table.
// Requests matching no action go to fallback, or a 404 when fallback is nil.
func New(table Table, fallback http.Handler, log logger.Logger) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	if log == nil {
		log = logger.New()
	}

	return &Router{fallback: fallback, log: log, table: table}
}

// ServeHTTP runs the filters in order, then the action the request resolves to.
//
// The first filter refusing the request fails it and dispatch stops.
// If the request context is done between two filters, dispatch stops without responding.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip, ok := middleware.IPFromContext(r.Context())
	if !ok {
		ip = middleware.ClientIP(r)
		r = r.WithContext(context.WithValue(r.Context(), crossweb.IpAddrKey, ip))
	}

	rt.log.Info(fmt.Sprintf("%s - %s %s", ip, r.Method, r.URL.RequestURI()), nil)

	for _, f := range rt.table.Filters {
		select {
		case <-r.Context().Done():
			rt.log.Debug("request done before dispatch", &logger.LogContext{Error: r.Context().Err(), Request: r})
			return
		default:
		}

		next, ok, err := f.Check(r)
		if err != nil || !ok {
			rt.log.Debug(fmt.Sprintf("filter %T refused request", f), &logger.LogContext{Error: err})
			f.Fail(w, r)
			return
		}

		if next != nil {
			r = next
		}
	}

	rt.Lookup(r.Method, r.URL.Path).ServeHTTP(w, r)
}

// Lookup is the action registered for method and path, or the default handler.
func (rt *Router) Lookup(method, path string) http.Handler {
	if h, ok := rt.table.Action(method, path); ok {
		return h
	}

	return rt.fallback
}

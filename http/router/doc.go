/*
Package router builds the route table a configuration document declares
and dispatches requests through it.

A [Registry] maps the names a configuration uses to the Go values behind them:
handler modules, whose actions serve routes, and filters,
which every request passes through before its route is resolved.

	reg := router.NewRegistry()
	reg.Module("GuardHandler", func() router.Module { return handler.NewGuardHandler(g, responder, log) })
	reg.Filter("FormFilter", func() router.Filter { return filter.NewFormFilter(log) })

	table := router.Build(cfg, reg, log)
	dispatcher := router.New(table, fallback, log)

[Build] never fails. A route or filter that cannot be resolved is logged and left out of the [Table].

[*Router] runs the filters of the table in order.
The first filter refusing a request writes the response and nothing after it runs.
Once every filter passed, the route matching the method and path exactly serves the request,
or, without one, the default handler does.
*/
package router

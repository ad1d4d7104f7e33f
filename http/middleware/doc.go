/*
The middleware package defines the adapters wrapping the dispatcher
on its way to the HTTP server.

The available middlewares are:
- CORS
- InjectIPAddress
- Recover
- ReportPanic

Filters decide whether a request proceeds; middlewares only decorate it.
A typical chain, outermost first:

	h := middleware.Chain(
		dispatcher,
		middleware.ReportPanic(env, log),
		middleware.CORS(cfg.CORS),
		middleware.InjectIPAddress(),
	)
*/
package middleware

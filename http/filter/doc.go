/*
Package filter holds the request filters a configuration's "filters" list can name.

	FormFilter       parses the query string and body into a crossweb.Body
	GuardFilter      resolves the session and authorizes the route
	RateLimitFilter  limits requests per client address
	RequestIDFilter  tags every request with a UUID

Each implements router.Filter; those needing the configuration implement router.Setupper.
*/
package filter

// Names the filters are registered under.
const (
	NameForm      = "FormFilter"
	NameGuard     = "GuardFilter"
	NameRateLimit = "RateLimitFilter"
	NameRequestID = "RequestIDFilter"
)

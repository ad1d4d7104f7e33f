package crossweb

import "context"

type Key string

const (
	// bodyKey stashes the parsed parameters of an HTTP request.
	bodyKey Key = "BodyKey"

	// IpAddrKey stashes the IP address of an HTTP request being dispatched.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session resolved for an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "crossweb context key: " + string(k)
}

// A Body is the set of parameters parsed out of an HTTP request:
// the query string of a GET or HEAD request, or the decoded body of any other.
//
// Values are either a string, a []string when a key repeats,
// or whatever encoding/json produces for a JSON body.
type Body map[string]any

// NewBodyContext adds fields to ctx, returning the resulting context.
// If a Body has already been added to ctx, fields are merged into it.
// If any keys collide, those in fields overwrite previous values.
func NewBodyContext(ctx context.Context, fields Body) context.Context {
	existing := BodyFromContext(ctx)
	merged := make(Body, len(existing)+len(fields))
	for k, v := range existing {
		merged[k] = v
	}

	for k, v := range fields {
		merged[k] = v
	}

	return context.WithValue(ctx, bodyKey, merged)
}

// BodyFromContext retrieves the Body in ctx.
// If not already set, it returns an empty Body.
func BodyFromContext(ctx context.Context) Body {
	b, ok := ctx.Value(bodyKey).(Body)
	if !ok {
		b = make(Body)
	}

	return b
}

// String returns the value at key if it is a string,
// or the first element if it is a []string.
func (b Body) String(key string) (string, bool) {
	switch v := b[key].(type) {
	case string:
		return v, true
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return v[0], true
	default:
		return "", false
	}
}

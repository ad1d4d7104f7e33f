package filter

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/crossweb"
)

// RequestIDFilter adds a uuid to the request context under crossweb.RequestIDKey.
type RequestIDFilter struct{}

func NewRequestIDFilter() RequestIDFilter { return RequestIDFilter{} }

func (RequestIDFilter) Check(r *http.Request) (*http.Request, bool, error) {
	ctx := context.WithValue(r.Context(), crossweb.RequestIDKey, uuid.NewString())
	return r.WithContext(ctx), true, nil
}

// Fail is never called; Check always passes.
func (RequestIDFilter) Fail(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
}

// RequestIDFromContext retrieves the id RequestIDFilter stored.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(crossweb.RequestIDKey).(string)
	return id, ok
}

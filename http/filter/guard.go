package filter

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/logger"
)

// A GuardOpt configures a GuardFilter.
type GuardOpt func(*GuardFilter)

// WithFilterClock sets the clock sessions expire against.
func WithFilterClock(now func() time.Time) GuardOpt {
	return func(f *GuardFilter) {
		f.now = now
	}
}

// GuardFilter admits requests the guard authorizes for the session they carry.
//
// The session token is read from the cookie the guard configuration names,
// or the same-named body field when FormFilter runs first.
// A token that does not decode, or whose session expired, leaves the caller anonymous.
// An admitted session is stashed in the request context, see guard.SessionFromContext.
//
// Refused requests are answered with:
//
//	503 when no guard is configured
//	302 to the login location, for anonymous browsers
//	403 with a JSON error, for other anonymous callers
//	401 with a JSON error, for authenticated callers
type GuardFilter struct {
	d     *resp.Responder
	guard *guard.Guard
	log   logger.Logger
	now   func() time.Time
}

func NewGuardFilter(g *guard.Guard, d *resp.Responder, log logger.Logger, opts ...GuardOpt) *GuardFilter {
	if log == nil {
		log = logger.New()
	}

	if d == nil {
		d = resp.NewResponder(resp.WithLogger(log))
	}

	f := &GuardFilter{d: d, guard: g, log: log, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *GuardFilter) Check(r *http.Request) (*http.Request, bool, error) {
	if f.guard == nil {
		return r, false, guard.ErrModuleNotInitialized
	}

	session := f.session(r)
	ok, err := f.guard.Authorize(r.Context(), guard.ResourceFromRequest(r), session)
	if err != nil {
		return r, false, err
	}

	if !ok {
		return r, false, nil
	}

	if session != nil {
		r = r.WithContext(guard.NewSessionContext(r.Context(), session))
	}

	return r, true, nil
}

func (f *GuardFilter) Fail(w http.ResponseWriter, r *http.Request) {
	if f.guard == nil {
		f.d.Err(w, r, guard.ErrModuleNotInitialized, resp.Code(http.StatusServiceUnavailable))
		return
	}

	if session := f.session(r); session != nil {
		f.deny(w, r, http.StatusUnauthorized, resp.User(session.User))
		return
	}

	if login := f.guard.Locations().Login; login != "" && acceptsTextHtml(r.Header) {
		if err := f.d.Redirect(w, r, resp.Url(login)); err != nil {
			f.d.Err(w, r, err)
		}
		return
	}

	f.deny(w, r, http.StatusForbidden)
}

func (f *GuardFilter) deny(w http.ResponseWriter, r *http.Request, code int, fns ...resp.Fn) {
	fns = append(fns, resp.Code(code), resp.Data(guard.ErrAccessDenied))
	if err := f.d.Json(w, r, fns...); err != nil {
		f.d.Err(w, r, err)
	}
}

// session resolves the live session r carries, if any.
func (f *GuardFilter) session(r *http.Request) *guard.Session {
	if s, ok := guard.SessionFromContext(r.Context()); ok {
		return s
	}

	token, ok := guard.SessionToken(r, f.guard.SessionKey())
	if !ok {
		return nil
	}

	s, err := f.guard.Validate(r.Context(), token)
	if err != nil {
		if !errors.Is(err, guard.ErrInvalidSession) {
			f.log.Warn("cannot validate session", &logger.LogContext{Error: err, Request: r})
		}
		return nil
	}

	if s.Expired(f.now(), guard.SessionTTL) {
		return nil
	}

	return s
}

// acceptsTextHtml asserts whether the requests accepts rendered HTML or not.
func acceptsTextHtml(header http.Header) bool {
	return strings.Index(header.Get("Accept"), "text/html") == 0
}

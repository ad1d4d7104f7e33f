package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/guard"
	"github.com/xy-planning-network/crossweb/http/resp"
	"github.com/xy-planning-network/crossweb/logger"
)

const defaultSessionKey = "session"

// GuardHandler signs callers in and out through the guard.
type GuardHandler struct {
	d     *resp.Responder
	guard *guard.Guard
	log   logger.Logger
}

func NewGuardHandler(g *guard.Guard, d *resp.Responder, log logger.Logger) *GuardHandler {
	if log == nil {
		log = logger.New()
	}

	if d == nil {
		d = resp.NewResponder(resp.WithLogger(log))
	}

	return &GuardHandler{d: d, guard: g, log: log}
}

func (h *GuardHandler) Action(name string) (http.HandlerFunc, bool) {
	switch name {
	case "authenticate":
		return h.Authenticate, true
	case "logout":
		return h.Logout, true
	case "session":
		return h.Session, true
	default:
		return nil, false
	}
}

// Authenticate issues a session and redirects to the index location with the session cookies.
//
// A caller GuardFilter already resolved a session for has it reissued.
// Anyone else is authenticated with the credential in the parsed request Body:
// a missing credential is a 503, a rejected one a 403 with the JSON error.
func (h *GuardHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	if h.guard == nil {
		h.d.Err(w, r, guard.ErrModuleNotInitialized, resp.Code(http.StatusServiceUnavailable))
		return
	}

	if current, ok := guard.SessionFromContext(r.Context()); ok {
		session, err := h.guard.Reissue(current)
		if err != nil {
			h.d.Err(w, r, err, resp.User(current.User))
			return
		}

		h.signedIn(w, r, session)
		return
	}

	cred, err := guard.CredentialFromBody(crossweb.BodyFromContext(r.Context()))
	if err != nil {
		h.d.Err(w, r, err, resp.Code(http.StatusServiceUnavailable))
		return
	}

	session, err := h.guard.Authenticate(r.Context(), cred)
	if err != nil {
		var gerr *guard.Error
		if !errors.As(err, &gerr) {
			h.d.Err(w, r, err, resp.Code(http.StatusServiceUnavailable))
			return
		}

		h.log.Debug("authentication refused", &logger.LogContext{Error: err})
		if err := h.d.Json(w, r, resp.Code(http.StatusForbidden), resp.Data(gerr)); err != nil {
			h.d.Err(w, r, err)
		}
		return
	}

	h.signedIn(w, r, session)
}

// Logout expires the session cookies and redirects to the index location.
func (h *GuardHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Redirect(w, r, h.toIndex(), resp.Cookies(guard.ExpiredCookies(h.sessionKey())...)); err != nil {
		h.d.Err(w, r, err)
	}
}

// A sessionView is the JSON shape of the session endpoint.
type sessionView struct {
	User      guard.Identity `json:"user"`
	Timestamp int64          `json:"timestamp"`
	Expires   int64          `json:"expires"`
}

// Session writes the identity and expiry of the session GuardFilter resolved,
// or a 401 when there is none.
func (h *GuardHandler) Session(w http.ResponseWriter, r *http.Request) {
	s, ok := guard.SessionFromContext(r.Context())
	if !ok {
		if err := h.d.Json(w, r, resp.Code(http.StatusUnauthorized), resp.Data(guard.ErrInvalidSession)); err != nil {
			h.d.Err(w, r, err)
		}
		return
	}

	view := sessionView{
		User:      s.User,
		Timestamp: s.Timestamp,
		Expires:   s.Expires(guard.SessionTTL).UnixMilli(),
	}

	if err := h.d.Json(w, r, resp.Data(view), resp.Header("Cache-Control", "no-store")); err != nil {
		h.d.Err(w, r, err)
	}
}

func (h *GuardHandler) signedIn(w http.ResponseWriter, r *http.Request, session *guard.Session) {
	fns := []resp.Fn{h.toIndex(), resp.Cookies(guard.SessionCookies(h.sessionKey(), session)...)}
	if err := h.d.Redirect(w, r, fns...); err != nil {
		h.d.Err(w, r, err, resp.User(session.User))
	}
}

func (h *GuardHandler) sessionKey() string {
	if key := h.guard.SessionKey(); key != "" {
		return key
	}

	return defaultSessionKey
}

func (h *GuardHandler) toIndex() resp.Fn {
	if index := h.guard.Locations().Index; index != "" {
		return resp.Url(index)
	}

	return resp.ToRoot()
}

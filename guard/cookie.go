package guard

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/crossweb"
)

// CookieTimeLayout is the Expires format Set-Cookie values are written in.
const CookieTimeLayout = "Mon, 02-Jan-2006 15:04:05 GMT"

// UserCookie names the cookie carrying the username of a session, for clients to read.
const UserCookie = "user"

// ParseCookies reads every key=value pair in a Cookie header.
// Pairs are separated by ";" or ",", keys are lower-cased,
// and values are path-unescaped when they are valid escapes.
//
// Malformed pairs are skipped; ParseCookies never fails.
func ParseCookies(header string) map[string]string {
	cookies := make(map[string]string)
	for _, pair := range strings.FieldsFunc(header, func(r rune) bool { return r == ';' || r == ',' }) {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}

		val = strings.TrimSpace(val)
		if unescaped, err := url.PathUnescape(val); err == nil {
			val = unescaped
		}

		cookies[key] = val
	}

	return cookies
}

// RequestCookies parses every Cookie header of r.
func RequestCookies(r *http.Request) map[string]string {
	return ParseCookies(strings.Join(r.Header.Values("Cookie"), ";"))
}

// SessionToken looks for the session token named name on r:
// first in its cookies, then in the same-named field of its parsed Body.
func SessionToken(r *http.Request, name string) (string, bool) {
	if tok, ok := RequestCookies(r)[strings.ToLower(name)]; ok && tok != "" {
		return tok, true
	}

	if tok, ok := crossweb.BodyFromContext(r.Context()).String(name); ok && tok != "" {
		return tok, true
	}

	return "", false
}

// CookieTime formats t for the Expires attribute of a Set-Cookie value.
func CookieTime(t time.Time) string {
	return t.UTC().Format(CookieTimeLayout)
}

// SessionCookies are the Set-Cookie values issuing session under the cookie name,
// both expiring when the session does.
func SessionCookies(name string, session *Session) []string {
	expires := CookieTime(session.Expires(SessionTTL))
	return []string{
		UserCookie + "=" + url.PathEscape(session.User.Username) + "; Expires=" + expires + "; Path=/;",
		name + "=" + session.ID + "; Expires=" + expires + "; Path=/;",
	}
}

// ExpiredCookies are the Set-Cookie values clearing a session under the cookie name.
func ExpiredCookies(name string) []string {
	expires := CookieTime(time.Unix(0, 0))
	return []string{
		UserCookie + "=; Expires=" + expires + "; Path=/;",
		name + "=; Expires=" + expires + "; Path=/;",
	}
}

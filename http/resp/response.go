package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/crossweb/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w    http.ResponseWriter
	r    *http.Request
	code int
	data any
	url  *url.URL
	user logger.LogUser
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Cookies adds a Set-Cookie header for each of the raw cookie strings.
func Cookies(raw ...string) Fn {
	return func(_ Responder, r *Response) error {
		for _, c := range raw {
			r.w.Header().Add("Set-Cookie", c)
		}
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err logs the error and sets the status code http.StatusInternalServerError,
// unless Code already set one.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data, r.user))
		}

		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}
		return nil
	}
}

// Header sets the response header key to val.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.w.Header().Set(key, val)
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// User stores the user in the *Response, for logging alongside errors.
func User(u logger.LogUser) Fn {
	return func(_ Responder, r *Response) error {
		r.user = u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}

package resp_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb/http/resp"
)

const jsonMediaType = "application/json; charset=UTF-8"

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Json(w, r, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name     string
		err      error
		fns      []resp.Fn
		code     int
		expected string
	}{
		{"Nil", nil, nil, http.StatusInternalServerError, ""},
		{"ErrDone", resp.ErrDone, nil, http.StatusInternalServerError, resp.ErrDone.Error()},
		{"Custom", errors.New("my favorite error"), nil, http.StatusInternalServerError, "my favorite error"},
		{"With-Code", errors.New("no guard"), []resp.Fn{resp.Code(http.StatusServiceUnavailable)}, http.StatusServiceUnavailable, "no guard"},
		{"With-User", errors.New("lookup"), []resp.Fn{resp.User(testUser{})}, http.StatusInternalServerError, "lookup"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			l := newLogger()
			d := resp.NewResponder(resp.WithLogger(l))

			// Act
			d.Err(w, r, tc.err, tc.fns...)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.expected, l.b.String())
			require.Equal(t, tc.expected+"\n", w.Body.String())
		})
	}
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name     string
		fns      []resp.Fn
		code     int
		expected string
	}{
		{"Zero-Value", nil, http.StatusOK, "null\n"},
		{"Data", []resp.Fn{resp.Data(map[string]any{"username": "admin@sample"})}, http.StatusOK, `{"username":"admin@sample"}` + "\n"},
		{
			"Code",
			[]resp.Fn{resp.Code(http.StatusForbidden), resp.Data(map[string]any{"message": "Invalid password"})},
			http.StatusForbidden,
			`{"message":"Invalid password"}` + "\n",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			d := resp.NewResponder(resp.WithLogger(newLogger()))

			// Act
			err := d.Json(w, r, tc.fns...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expected, w.Body.String())
		})
	}

	t.Run("Unencodable", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		w := httptest.NewRecorder()
		l := newLogger()
		d := resp.NewResponder(resp.WithLogger(l))

		// Act
		err := d.Json(w, r, resp.Data(make(chan int)))

		// Assert
		require.NotNil(t, err)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotEmpty(t, l.b.String())
	})
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.ResponderOptFn
		fns      []resp.Fn
		code     int
		location string
	}{
		{"Default", nil, nil, http.StatusFound, "/"},
		{"Root", []resp.ResponderOptFn{resp.WithRootUrl("/index.html")}, nil, http.StatusFound, "/index.html"},
		{"Bad-Root", []resp.ResponderOptFn{resp.WithRootUrl("::")}, nil, http.StatusFound, "/"},
		{"Url", nil, []resp.Fn{resp.Url("/login.html")}, http.StatusFound, "/login.html"},
		{"Param", nil, []resp.Fn{resp.Url("/login.html"), resp.Param("next", "/admin")}, http.StatusFound, "/login.html?next=%2Fadmin"},
		{"Keep-3xx", nil, []resp.Fn{resp.Code(http.StatusMovedPermanently)}, http.StatusMovedPermanently, "/"},
		{"4xx", nil, []resp.Fn{resp.Code(http.StatusForbidden)}, http.StatusSeeOther, "/"},
		{"5xx", nil, []resp.Fn{resp.Code(http.StatusServiceUnavailable)}, http.StatusTemporaryRedirect, "/"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "http://example.com/somewhere", nil)
			w := httptest.NewRecorder()
			d := resp.NewResponder(append(tc.opts, resp.WithLogger(newLogger()))...)

			// Act
			err := d.Redirect(w, r, tc.fns...)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}

	t.Run("Bad-Url", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		w := httptest.NewRecorder()
		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Redirect(w, r, resp.Url("not a url"))

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
	})

	t.Run("Root-Untouched", func(t *testing.T) {
		// Arrange
		d := resp.NewResponder(resp.WithRootUrl("/index.html"), resp.WithLogger(newLogger()))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		require.Nil(t, d.Redirect(w, r, resp.Param("a", "b")))

		// Act
		w = httptest.NewRecorder()
		err := d.Redirect(w, r)

		// Assert
		require.Nil(t, err)
		require.Equal(t, "/index.html", w.Header().Get("Location"))
	})
}

func TestResponderCookies(t *testing.T) {
	// Arrange
	r := httptest.NewRequest(http.MethodPost, "http://example.com", nil)
	w := httptest.NewRecorder()
	d := resp.NewResponder(resp.WithLogger(newLogger()))

	// Act
	err := d.Redirect(w, r, resp.Cookies("user=a; Path=/;", "session=b; Path=/;"), resp.Header("Cache-Control", "no-store"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"user=a; Path=/;", "session=b; Path=/;"}, w.Header().Values("Set-Cookie"))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

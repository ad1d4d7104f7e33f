package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"

	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/logger"
)

// ErrBodyTooLarge is a request body exceeding the cap of a FormFilter.
var ErrBodyTooLarge = errors.New("body too large")

const (
	// BareKey collects the query keys given without a value, e.g. "?debug".
	BareKey = "_"

	defaultMaxBody = 10 << 20
)

// FormFilter parses request parameters into a crossweb.Body stashed in the request context.
//
// GET and HEAD requests are read from their query string.
// Other requests merge their body into the query string, decoding it by Content-Type:
// JSON objects, URL-encoded forms, and multipart forms, whose files are *multipart.FileHeader values.
// A body that fails to decode, or exceeds the cap (10 MiB by default), leaves an empty Body.
//
// FormFilter never refuses a request.
type FormFilter struct {
	log     logger.Logger
	maxBody int64
}

// A FormOpt configures a FormFilter.
type FormOpt func(*FormFilter)

// WithMaxBody caps the bytes read from a request body.
// Non-positive values leave the default of 10 MiB in place.
func WithMaxBody(n int64) FormOpt {
	return func(f *FormFilter) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

func NewFormFilter(log logger.Logger, opts ...FormOpt) *FormFilter {
	if log == nil {
		log = logger.New()
	}

	f := &FormFilter{log: log, maxBody: defaultMaxBody}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *FormFilter) Check(r *http.Request) (*http.Request, bool, error) {
	body := fromValues(r.URL.Query())
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = f.parseBody(r, body)
	} else if _, ok := body[BareKey]; !ok {
		body[BareKey] = []string{}
	}

	return r.WithContext(crossweb.NewBodyContext(r.Context(), body)), true, nil
}

// Fail is never called; Check always passes.
func (f *FormFilter) Fail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (f *FormFilter) parseBody(r *http.Request, body crossweb.Body) crossweb.Body {
	if r.Body == nil || r.Body == http.NoBody {
		return body
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		b, err := f.read(r)
		if err != nil {
			return make(crossweb.Body)
		}

		fields := make(map[string]any)
		if err := json.Unmarshal(b, &fields); err != nil {
			f.log.Debug("invalid form data", &logger.LogContext{Error: err, Data: map[string]any{"body": string(b)}})
			return make(crossweb.Body)
		}

		for k, v := range fields {
			body[k] = v
		}

	case "application/x-www-form-urlencoded":
		b, err := f.read(r)
		if err != nil {
			return make(crossweb.Body)
		}

		fields, err := url.ParseQuery(string(b))
		if err != nil {
			f.log.Debug("invalid form data", &logger.LogContext{Error: err})
		}

		for k, v := range fromValues(fields) {
			if k == BareKey {
				continue
			}
			body[k] = v
		}

	case "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, f.maxBody)
		if err := r.ParseMultipartForm(f.maxBody); err != nil {
			f.log.Debug("invalid multipart form", &logger.LogContext{Error: err})
			return make(crossweb.Body)
		}

		for k, v := range fromValues(r.MultipartForm.Value) {
			if k == BareKey {
				continue
			}
			body[k] = v
		}

		for k, files := range r.MultipartForm.File {
			body[k] = fromFiles(files)
		}
	}

	return body
}

// read drains the body of r, leaving a copy behind for handlers reading it again.
// A body over maxBody is ErrBodyTooLarge.
func (f *FormFilter) read(r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, f.maxBody+1))
	r.Body.Close()
	if err != nil {
		f.log.Debug("cannot read body", &logger.LogContext{Error: err})
		return nil, err
	}

	if int64(len(b)) > f.maxBody {
		err := fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, f.maxBody)
		f.log.Warn("cannot read body", &logger.LogContext{Error: err, Request: r})
		r.Body = http.NoBody
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// fromValues maps single values to strings and repeated ones to []string.
// Keys without any value are listed under BareKey.
func fromValues(vals map[string][]string) crossweb.Body {
	body := make(crossweb.Body, len(vals))
	bare := make([]string, 0)
	for k, vs := range vals {
		nonEmpty := make([]string, 0, len(vs))
		for _, v := range vs {
			if v != "" {
				nonEmpty = append(nonEmpty, v)
			}
		}

		switch len(nonEmpty) {
		case 0:
			bare = append(bare, k)
		case 1:
			body[k] = nonEmpty[0]
		default:
			body[k] = nonEmpty
		}
	}

	if len(bare) > 0 {
		sort.Strings(bare)
		body[BareKey] = bare
	}

	return body
}

func fromFiles(files []*multipart.FileHeader) any {
	if len(files) == 1 {
		return files[0]
	}

	return files
}

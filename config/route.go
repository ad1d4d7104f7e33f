package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// KeyPattern is the grammar of a route key: lower-case verbs joined by single "|", or "*",
// then ":" and a path of word characters, slashes and dots.
var KeyPattern = regexp.MustCompile(`^([a-z]+(\|[a-z]+)*|\*):/[\w/.]+$`)

// DefaultMethods are the verbs a "*" route key expands into.
var DefaultMethods = []string{"get", "post"}

// A Route is one declaration of the routes object.
type Route struct {
	Key     string   `json:"-"`
	Handler string   `json:"handler"`
	Allow   []string `json:"allow"`
	Model   string   `json:"model"`
}

// Routes keeps route declarations in the order the document lists them.
type Routes []Route

// UnmarshalJSON decodes the routes object token by token to preserve declaration order.
// A key declared twice keeps its first position and its last value.
func (rs *Routes) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*rs = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("routes must be an object, got %v", tok)
	}

	out := make(Routes, 0)
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key := tok.(string)
		var route Route
		if err := dec.Decode(&route); err != nil {
			return fmt.Errorf("route %q: %w", key, err)
		}
		route.Key = key

		if i, ok := seen[key]; ok {
			out[i] = route
			continue
		}

		seen[key] = len(out)
		out = append(out, route)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*rs = out
	return nil
}

// Parse splits the route key into the verbs it expands into and its path.
//
// "*" expands into DefaultMethods; "get|post" into one verb each.
func (r Route) Parse() ([]string, string, error) {
	return ParseKey(r.Key)
}

// ParseKey splits key into the verbs it expands into and its path.
func ParseKey(key string) ([]string, string, error) {
	if !KeyPattern.MatchString(key) {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	verbs, path, _ := strings.Cut(key, ":")
	if verbs == "*" {
		return append([]string(nil), DefaultMethods...), path, nil
	}

	return strings.Split(verbs, "|"), path, nil
}

// Action splits the handler reference "Module.action".
// A route with a model and no handler defaults to "RenderHandler.request".
func (r Route) Action() (module, action string, err error) {
	handler := r.Handler
	if handler == "" && r.Model != "" {
		handler = "RenderHandler.request"
	}

	if handler == "" {
		return "", "", fmt.Errorf("%w: %q", ErrNoHandler, r.Key)
	}

	module, action, ok := strings.Cut(handler, ".")
	if !ok || module == "" || action == "" {
		return "", "", fmt.Errorf("%w: %q is not Module.action", ErrNoHandler, handler)
	}

	return module, action, nil
}

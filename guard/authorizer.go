package guard

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/crossweb/config"
)

// A Resource is what a request asks for.
type Resource struct {
	Method string
	Path   string
}

// ResourceFromRequest reads the Resource out of r, ignoring the query string.
func ResourceFromRequest(r *http.Request) Resource {
	return Resource{Method: r.Method, Path: r.URL.Path}
}

// A RoleSet is the roles allowed on a route. An empty RoleSet is public.
type RoleSet map[string]struct{}

func NewRoleSet(roles ...string) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}

	return rs
}

func (rs RoleSet) Has(role string) bool {
	_, ok := rs[role]
	return ok
}

// An Authorizer is the permission table of every route declaration:
// method to path to the roles allowed.
type Authorizer struct {
	methods map[string]map[string]RoleSet
}

// NewAuthorizer builds the permission table from routes,
// expanding route keys the same way the route table does.
// Declarations with an invalid key are left out.
func NewAuthorizer(routes config.Routes) *Authorizer {
	a := &Authorizer{methods: make(map[string]map[string]RoleSet)}
	for _, route := range routes {
		methods, path, err := route.Parse()
		if err != nil {
			continue
		}

		for _, m := range methods {
			a.Set(m, path, route.Allow...)
		}
	}

	return a
}

// Set replaces the roles allowed on method and path.
// Call Set only while building the table, never while serving requests.
func (a *Authorizer) Set(method, path string, roles ...string) {
	method = strings.ToLower(method)
	if a.methods[method] == nil {
		a.methods[method] = make(map[string]RoleSet)
	}

	a.methods[method][path] = NewRoleSet(roles...)
}

// Lookup returns the roles allowed on res and whether res is in the table at all.
func (a *Authorizer) Lookup(res Resource) (RoleSet, bool) {
	paths, ok := a.methods[strings.ToLower(res.Method)]
	if !ok {
		return nil, false
	}

	rs, ok := paths[res.Path]
	return rs, ok
}

// Authorize decides whether id may reach res. A nil id is anonymous.
//
// A resource missing from the table, or allowing no roles in particular, lets anyone through.
// Otherwise id needs any one of the allowed roles.
func (a *Authorizer) Authorize(res Resource, id *Identity) bool {
	rs, ok := a.Lookup(res)
	if !ok || len(rs) == 0 {
		return true
	}

	if id == nil {
		return false
	}

	for _, role := range id.Roles {
		if rs.Has(role) {
			return true
		}
	}

	return false
}

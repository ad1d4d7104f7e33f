package authn

import "strings"

// splitRoles reads a comma separated list of roles, dropping blanks.
func splitRoles(s string) []string {
	roles := make([]string, 0)
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}

	return roles
}

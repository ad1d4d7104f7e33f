package guard

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/xy-planning-network/crossweb/config"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=guardmock/authenticator.go -package=guardmock . Authenticator

// An Authenticator verifies a Credential, returning who presented it.
//
// Failures are ErrAuthenticateNoUser, ErrAuthenticateWrongPassword
// or ErrAuthenticateInvalidType for a credential it does not handle.
type Authenticator interface {
	Authenticate(ctx context.Context, cred Credential) (Identity, error)
}

// An AuthenticatorFactory builds the Authenticator a guard configuration names.
type AuthenticatorFactory func(cfg *config.Guard) (Authenticator, error)

// A Registry authenticates Plain credentials against the users of the guard configuration.
type Registry struct {
	users map[string]config.User
}

func NewRegistry(users map[string]config.User) *Registry {
	if users == nil {
		users = make(map[string]config.User)
	}

	return &Registry{users: users}
}

func (r *Registry) Authenticate(_ context.Context, cred Credential) (Identity, error) {
	plain, ok := cred.(Plain)
	if !ok {
		return Identity{}, ErrAuthenticateInvalidType.WithReference(cred)
	}

	found, ok := r.users[plain.Username]
	if !ok {
		return Identity{}, ErrAuthenticateNoUser.WithReference(plain.Username)
	}

	if !PasswordMatches(found.Password, plain.Password) {
		return Identity{}, ErrAuthenticateWrongPassword.WithReference(plain.Username)
	}

	return Identity{Username: plain.Username, Roles: append([]string(nil), found.Roles...)}, nil
}

// PasswordMatches compares a stored password against the one presented.
// Stored passwords prefixed like a bcrypt hash are checked as one.
func PasswordMatches(stored, presented string) bool {
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

func isBcrypt(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

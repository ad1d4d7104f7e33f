package guard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
	"golang.org/x/crypto/bcrypt"
)

func TestRegistryAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hashed secret"), bcrypt.MinCost)
	require.Nil(t, err)

	r := guard.NewRegistry(map[string]config.User{
		"admin":        {Password: "correct", Roles: []string{"role1"}},
		"admin@sample": {Password: "1password;", Roles: []string{"role1"}},
		"hashed":       {Password: string(hashed), Roles: []string{"role2"}},
	})

	for _, tc := range []struct {
		name     string
		cred     guard.Credential
		expected guard.Identity
		err      error
	}{
		{"Correct", guard.Plain{Username: "admin", Password: "correct"}, guard.Identity{Username: "admin", Roles: []string{"role1"}}, nil},
		{"Sample", guard.Plain{Username: "admin@sample", Password: "1password;"}, guard.Identity{Username: "admin@sample", Roles: []string{"role1"}}, nil},
		{"Bcrypt", guard.Plain{Username: "hashed", Password: "hashed secret"}, guard.Identity{Username: "hashed", Roles: []string{"role2"}}, nil},
		{"Bcrypt-Wrong", guard.Plain{Username: "hashed", Password: string(hashed)}, guard.Identity{}, guard.ErrAuthenticateWrongPassword},
		{"Wrong-Password", guard.Plain{Username: "admin", Password: "incorrect"}, guard.Identity{}, guard.ErrAuthenticateWrongPassword},
		{"No-User", guard.Plain{Username: "nobody", Password: "correct"}, guard.Identity{}, guard.ErrAuthenticateNoUser},
		{"Bearer", guard.Bearer{Token: "abc"}, guard.Identity{}, guard.ErrAuthenticateInvalidType},
		{"Unknown", guard.UnknownCredential{Kind: "oauth"}, guard.Identity{}, guard.ErrAuthenticateInvalidType},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := r.Authenticate(context.Background(), tc.cred)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestRegistryNilUsers(t *testing.T) {
	// Arrange
	r := guard.NewRegistry(nil)

	// Act
	_, err := r.Authenticate(context.Background(), guard.Plain{Username: "admin"})

	// Assert
	require.ErrorIs(t, err, guard.ErrAuthenticateNoUser)
}

func TestCredentialFromBody(t *testing.T) {
	for _, tc := range []struct {
		name     string
		body     crossweb.Body
		expected guard.Credential
		err      error
	}{
		{"Empty", crossweb.Body{}, nil, guard.ErrInvalidCredential},
		{"Nil", nil, nil, guard.ErrInvalidCredential},
		{
			"Plain",
			crossweb.Body{"type": "plain", "username": "admin", "password": "correct"},
			guard.Plain{Username: "admin", Password: "correct"},
			nil,
		},
		{
			"Plain-Form",
			crossweb.Body{"type": []string{"plain"}, "username": []string{"admin"}, "password": []string{"correct"}},
			guard.Plain{Username: "admin", Password: "correct"},
			nil,
		},
		{"Token", crossweb.Body{"type": "token", "token": "abc"}, guard.Bearer{Token: "abc"}, nil},
		{"No-Type", crossweb.Body{"username": "admin"}, guard.UnknownCredential{}, nil},
		{"Other-Type", crossweb.Body{"type": "oauth"}, guard.UnknownCredential{Kind: "oauth"}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := guard.CredentialFromBody(tc.body)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestErrorIs(t *testing.T) {
	// Arrange
	err := guard.ErrAuthenticateNoUser.WithReference("nobody")

	// Assert
	require.ErrorIs(t, err, guard.ErrAuthenticateNoUser)
	require.NotErrorIs(t, err, guard.ErrAuthenticateWrongPassword)
	require.Equal(t, "nobody", err.Reference)
	require.Nil(t, guard.ErrAuthenticateNoUser.Reference)
	require.Equal(t, "No user found (1000.1010)", err.Error())
}

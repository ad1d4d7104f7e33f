package authn

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
)

// Claims are what a token carries: the subject is the username.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Token authenticates Bearer credentials: HS256 tokens signed with a shared secret.
// Expiry and not-before are enforced when the token sets them,
// the issuer when one is configured.
type Token struct {
	issuer string
	secret []byte
}

func NewToken(secret []byte, issuer string) *Token {
	return &Token{issuer: issuer, secret: secret}
}

// TokenFactory reads the shared secret of the guard configuration.
func TokenFactory(cfg *config.Guard) (guard.Authenticator, error) {
	if cfg.Token == nil || cfg.Token.Secret == "" {
		return nil, fmt.Errorf("%w: guard.token.secret", ErrNoConfig)
	}

	return NewToken([]byte(cfg.Token.Secret), cfg.Token.Issuer), nil
}

func (a *Token) Authenticate(_ context.Context, cred guard.Credential) (guard.Identity, error) {
	bearer, ok := cred.(guard.Bearer)
	if !ok {
		return guard.Identity{}, guard.ErrAuthenticateInvalidType.WithReference(cred)
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(bearer.Token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return guard.Identity{}, guard.ErrAuthenticateWrongPassword.WithReference(err)
	}

	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return guard.Identity{}, guard.ErrAuthenticateWrongPassword.WithReference("issuer")
	}

	if claims.Subject == "" {
		return guard.Identity{}, guard.ErrAuthenticateNoUser.WithReference("subject")
	}

	return guard.Identity{Username: claims.Subject, Roles: append([]string{}, claims.Roles...)}, nil
}

// Sign issues a token for id, for clients and tests that need one.
func (a *Token) Sign(id guard.Identity, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = id.Username
	if claims.Issuer == "" {
		claims.Issuer = a.issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Roles: id.Roles, RegisteredClaims: claims}).SignedString(a.secret)
}

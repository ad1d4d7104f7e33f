package guard

import (
	"github.com/xy-planning-network/crossweb"
)

const (
	CredentialPlain = "plain"
	CredentialToken = "token"
)

// A Credential is something a caller presents to prove who they are.
type Credential interface {
	Type() string
}

// Plain is a username and password.
type Plain struct {
	Username string
	Password string
}

func (Plain) Type() string { return CredentialPlain }

// Bearer is a signed token issued by a third party.
type Bearer struct {
	Token string
}

func (Bearer) Type() string { return CredentialToken }

// UnknownCredential is a credential whose type no built-in variant covers.
type UnknownCredential struct {
	Kind string
}

func (u UnknownCredential) Type() string { return u.Kind }

// CredentialFromBody reads the credential a client posted, its "type" field selecting the variant.
// A missing or unrecognized type yields an UnknownCredential.
//
// An empty body is ErrInvalidCredential.
func CredentialFromBody(body crossweb.Body) (Credential, error) {
	if len(body) == 0 {
		return nil, ErrInvalidCredential
	}

	kind, _ := body.String("type")
	switch kind {
	case CredentialPlain:
		username, _ := body.String("username")
		password, _ := body.String("password")
		return Plain{Username: username, Password: password}, nil
	case CredentialToken:
		token, _ := body.String("token")
		return Bearer{Token: token}, nil
	default:
		return UnknownCredential{Kind: kind}, nil
	}
}

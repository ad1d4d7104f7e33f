package guard

import "fmt"

// DomainFramework is the domain of every error raised by crossweb itself.
const DomainFramework = 1000

const (
	CodeAuthenticateInvalidType   = 1000
	CodeAuthenticateNoUser        = 1010
	CodeAuthenticateWrongPassword = 1011
	CodeInvalidCredential         = 1020
	CodeModuleNotInitialized      = 1100
	CodeInvalidSession            = 1200
	CodeRouteConfigInvalid        = 1300
	CodeFilterLoadFailed          = 1310
	CodeAccessDenied              = 1400
)

var (
	ErrAuthenticateInvalidType   = &Error{Message: "Invalid authentication type", Domain: DomainFramework, Code: CodeAuthenticateInvalidType}
	ErrAuthenticateNoUser        = &Error{Message: "No user found", Domain: DomainFramework, Code: CodeAuthenticateNoUser}
	ErrAuthenticateWrongPassword = &Error{Message: "Invalid password", Domain: DomainFramework, Code: CodeAuthenticateWrongPassword}
	ErrInvalidCredential         = &Error{Message: "No credential found", Domain: DomainFramework, Code: CodeInvalidCredential}
	ErrModuleNotInitialized      = &Error{Message: "Guard does not setup yet", Domain: DomainFramework, Code: CodeModuleNotInitialized}
	ErrInvalidSession            = &Error{Message: "Invalid session", Domain: DomainFramework, Code: CodeInvalidSession}
	ErrRouteConfigInvalid        = &Error{Message: "Invalid route", Domain: DomainFramework, Code: CodeRouteConfigInvalid}
	ErrFilterLoadFailed          = &Error{Message: "Cannot load filter", Domain: DomainFramework, Code: CodeFilterLoadFailed}
	ErrAccessDenied              = &Error{Message: "Access denied", Domain: DomainFramework, Code: CodeAccessDenied}
)

// An Error is a failure surfaced to HTTP callers as {message, domain, code}.
//
// Two Errors match under errors.Is when their codes are equal.
type Error struct {
	Message string `json:"message"`
	Domain  int    `json:"domain"`
	Code    int    `json:"code"`

	// Reference is whatever caused the error, e.g. the offending credential.
	// It is never serialized.
	Reference any `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d.%d)", e.Message, e.Domain, e.Code)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Domain == e.Domain && t.Code == e.Code
}

// WithReference copies e, attaching ref.
func (e *Error) WithReference(ref any) *Error {
	cp := *e
	cp.Reference = ref
	return &cp
}

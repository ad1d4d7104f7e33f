package authn

import "errors"

var (
	ErrNoConfig = errors.New("no configuration")
	ErrLookup   = errors.New("cannot look up user")
)

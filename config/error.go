package config

import "errors"

var (
	ErrInvalidKey = errors.New("invalid route key")
	ErrNoHandler  = errors.New("no handler")
)

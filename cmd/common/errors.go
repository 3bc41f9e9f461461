package common

import "errors"

// Dependency errors reported before a command touches the network or the store.
var (
	ErrLoggerRequired   = errors.New("command deps: logger not initialised")
	ErrConfigRequired   = errors.New("command deps: configuration not loaded")
	ErrDatabaseRequired = errors.New("command deps: database section missing")
)

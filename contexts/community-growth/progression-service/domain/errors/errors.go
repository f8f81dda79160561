package errors

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrProjectNotFound      = errors.New("project metrics not found")
	ErrStoreUnavailable     = errors.New("metrics store unavailable")
	ErrCommunityLinked      = errors.New("community already linked")
	ErrDirectoryUnreachable = errors.New("community directory unavailable")
)

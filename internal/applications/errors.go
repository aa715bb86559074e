package applications

import "errors"

var (
	ErrNotFound          = errors.New("application not found")
	ErrForbidden         = errors.New("application not owned by caller")
	ErrDuplicate         = errors.New("application already exists for role")
	ErrUnknownAction     = errors.New("unknown stage action")
	ErrInvalidTransition = errors.New("invalid stage transition")
)

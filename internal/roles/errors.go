package roles

import "errors"

var ErrNotFound = errors.New("role not found")

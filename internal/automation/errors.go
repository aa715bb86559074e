package automation

import "errors"

var ErrNotFound = errors.New("automation config not found")

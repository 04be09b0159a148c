package alloc

import "errors"

// ErrNeedSmall indicates a negative payload size was requested.
var ErrNeedSmall = errors.New("alloc: need must be >= 0")

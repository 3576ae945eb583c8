package lock

import "errors"

// ErrLockTimeout is returned when the wait for a key held by another caller
// runs past its deadline. The caller never acquired the key.
var ErrLockTimeout = errors.New("keyed lock wait timed out")

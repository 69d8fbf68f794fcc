package bough

import "errors"

// Sentinel errors returned by child-list operations. They are wrapped with
// the failing operation and arguments; test with errors.Is.
var (
	ErrIndexOutOfRange = errors.New("bough: child index out of range")
	ErrNotChild        = errors.New("bough: node is not a child of this node")
	ErrInvalidRange    = errors.New("bough: invalid child range")
	ErrDestroyed       = errors.New("bough: node is destroyed")
)

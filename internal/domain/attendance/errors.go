package attendance

import "errors"

var (
	ErrUnknownPolicy  = errors.New("unknown dedup policy")
	ErrEntryNotFound  = errors.New("attendance entry not found")
	ErrEntryImmutable = errors.New("attendance entries are immutable after creation")
)

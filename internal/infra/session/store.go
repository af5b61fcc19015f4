package session

import (
	"context"
	"errors"
)

// Storage keys shared with the UI shell.
const (
	KeyToken    = "token"
	KeyUserInfo = "userInfo"
)

// ErrEmptyKey is returned when a store is asked for the empty key.
var ErrEmptyKey = errors.New("session: empty key")

// Store is the local key-value store holding the session.
// Get reports found=false for absent keys; Remove of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

package session

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

const defaultPrefix = "pairhealth:session"

// ValkeyStore shares the session through a Valkey-compatible server, for
// shells that run more than one gateway process.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	value, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(value)).Build()).Error()
}

func (s *ValkeyStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error()
}

func (s *ValkeyStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

var _ Store = (*ValkeyStore)(nil)

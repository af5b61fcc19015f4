package session

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const sealInfo = "pairhealth session v1"

var errSealedPayload = errors.New("session: sealed payload too short")

// Sealer encrypts values with AES-256-GCM under a key derived from a passphrase.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the key with HKDF-SHA256. salt may be empty.
func NewSealer(secret, salt string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("session: empty sealing secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: gcm}, nil
}

// Seal returns nonce || ciphertext. The key name is bound as additional data
// so a value cannot be moved to another key.
func (s *Sealer) Seal(key string, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, []byte(key)), nil
}

// Open reverses Seal.
func (s *Sealer) Open(key string, payload []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(payload) < nonceSize {
		return nil, errSealedPayload
	}
	return s.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], []byte(key))
}

// SealedStore encrypts every value before handing it to the inner store.
type SealedStore struct {
	inner  Store
	sealer *Sealer
}

// NewSealedStore wraps inner.
func NewSealedStore(inner Store, sealer *Sealer) *SealedStore {
	return &SealedStore{inner: inner, sealer: sealer}
}

func (s *SealedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	value, err := s.sealer.Open(key, payload)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SealedStore) Set(ctx context.Context, key string, value []byte) error {
	payload, err := s.sealer.Seal(key, value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, payload)
}

func (s *SealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

var _ Store = (*SealedStore)(nil)

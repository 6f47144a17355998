package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
)

// envelopeKey marks the single value of an encrypted fixture.
const envelopeKey = "__encrypted__"

// EncryptionConfig selects the AES-256 keys of the encryption middleware.
type EncryptionConfig struct {
	// ActiveKey seals every saved fixture. Exactly 32 bytes.
	ActiveKey []byte

	// FallbackKeys open fixtures sealed before the active key was rotated in.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.FixtureStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals fixtures with
// AES-GCM. The envelope keeps ID, blueprint name and creation time in the
// clear; seed and values are only readable with a key. The ciphertext is
// bound to the fixture ID, so it cannot be replayed under another ID.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.FixtureStore) ports.FixtureStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, fixture *domain.Fixture) error {
	if fixture == nil {
		return errors.New("fixture is required")
	}

	plainText, err := json.Marshal(fixture)
	if err != nil {
		return fmt.Errorf("failed to marshal fixture: %w", err)
	}

	ciphertext, err := seal(m.config.ActiveKey, plainText, []byte(fixture.ID))
	if err != nil {
		return fmt.Errorf("failed to encrypt fixture: %w", err)
	}

	envelope := &domain.Fixture{
		ID:        fixture.ID,
		Blueprint: fixture.Blueprint,
		CreatedAt: fixture.CreatedAt,
		Values: []any{map[string]any{
			envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
		}},
	}
	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.Fixture, error) {
	envelope, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, ok := sealed(envelope)
	if !ok {
		// Fail secure: a plain fixture under an encrypting store is not trusted.
		return nil, errors.New("fixture is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := m.open(ciphertext, []byte(envelope.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt fixture: %w", err)
	}

	var fixture domain.Fixture
	if err := json.Unmarshal(plainText, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted fixture: %w", err)
	}
	return &fixture, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func sealed(envelope *domain.Fixture) (string, bool) {
	if len(envelope.Values) != 1 {
		return "", false
	}
	box, ok := envelope.Values[0].(map[string]any)
	if !ok {
		return "", false
	}
	encoded, ok := box[envelopeKey].(string)
	return encoded, ok
}

// open tries the active key first, then every fallback key in order.
func (m *encryptionMiddleware) open(ciphertext, id []byte) ([]byte, error) {
	keys := append([][]byte{m.config.ActiveKey}, m.config.FallbackKeys...)
	for _, key := range keys {
		if plain, err := unseal(key, ciphertext, id); err == nil {
			return plain, nil
		}
	}
	return nil, fmt.Errorf("none of %d keys opens the envelope", len(keys))
}

// seal returns nonce || ciphertext.
func seal(key, plaintext, id []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, id), nil
}

func unseal(key, sealed, id []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	n := aead.NonceSize()
	if len(sealed) < n+aead.Overhead() {
		return nil, errors.New("sealed payload too short")
	}
	return aead.Open(nil, sealed[:n], sealed[n:], id)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

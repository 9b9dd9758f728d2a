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

	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.TemplateRepository
	config EncryptionConfig
}

// envelopeName marks a persisted record as an encrypted envelope.
const envelopeName = "__encrypted__"

// NewEncryptionMiddleware creates a middleware that encrypts templates
// at rest using AES-GCM. Prompts and shell commands in a workflow can
// carry credentials, so the node/edge content is sealed; only the
// template id stays visible, as Remove and the id lists route by it.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.TemplateRepository) ports.TemplateRepository {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, templates []domain.Template) error {
	envelopes := make([]domain.Template, len(templates))
	for i, t := range templates {
		plainText, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal template: %w", err)
		}

		ciphertext, err := encrypt(plainText, m.config.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt template: %w", err)
		}

		// Opaque envelope: id stays in the clear for routing, the rest
		// of the template is hidden in the description field.
		envelopes[i] = domain.Template{
			ID:          t.ID,
			Name:        envelopeName,
			Description: base64.StdEncoding.EncodeToString(ciphertext),
		}
	}
	return m.next.Save(ctx, envelopes)
}

func (m *encryptionMiddleware) Load(ctx context.Context) ([]domain.Template, error) {
	envelopes, err := m.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	templates := make([]domain.Template, len(envelopes))
	for i, env := range envelopes {
		if env.Name != envelopeName {
			// Fail secure: with encryption configured, plain records are
			// treated as corruption, not silently passed through.
			return nil, fmt.Errorf("template %s is missing its encrypted envelope", env.ID)
		}

		ciphertext, err := base64.StdEncoding.DecodeString(env.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}

		plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt template %s: %w", env.ID, err)
		}

		if err := json.Unmarshal(plainText, &templates[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decrypted template: %w", err)
		}
	}
	return templates, nil
}

func (m *encryptionMiddleware) Remove(ctx context.Context, id string) error {
	return m.next.Remove(ctx, id)
}

func (m *encryptionMiddleware) LoadIDList(ctx context.Context, key string) ([]string, error) {
	return m.next.LoadIDList(ctx, key)
}

func (m *encryptionMiddleware) SaveIDList(ctx context.Context, key string, ids []string) error {
	return m.next.SaveIDList(ctx, key, ids)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}

package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/google/uuid"
)

const Name string = "advisor_session"

var ErrInvalidValue = errors.New("invalid cookie value")

// Codec seals session IDs into tamper-proof cookies with AES-GCM.
type Codec struct {
	aead   cipher.AEAD
	secure bool
}

func NewCodec(secret []byte, secure bool) (*Codec, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead, secure: secure}, nil
}

// NewCodecFromConfig builds a Codec from SECRET_KEY and COOKIE_SECURE.
func NewCodecFromConfig(cfg *config.Config) (*Codec, error) {
	secret, err := cfg.SecretKeyBytes()
	if err != nil {
		return nil, err
	}
	return NewCodec(secret, cfg.CookieSecure)
}

// seal produces base64("{nonce}{ciphertext}") over "name:sessionID".
// The cookie name is authenticated too, so a value cannot be replayed under another name.
func (c *Codec) seal(sessionID uuid.UUID) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	plaintext := fmt.Sprintf("%s:%s", Name, sessionID.String())
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) open(value string) (uuid.UUID, error) {
	raw, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return uuid.Nil, ErrInvalidValue
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return uuid.Nil, ErrInvalidValue
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return uuid.Nil, ErrInvalidValue
	}

	name, id, ok := strings.Cut(string(plaintext), ":")
	if !ok || name != Name {
		return uuid.Nil, ErrInvalidValue
	}

	sessionID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidValue
	}
	return sessionID, nil
}

// Get returns the session ID carried by the request, or an error if the cookie is absent or forged.
func (c *Codec) Get(r *http.Request) (uuid.UUID, error) {
	ck, err := r.Cookie(Name)
	if err != nil {
		return uuid.Nil, err
	}
	return c.open(ck.Value)
}

func (c *Codec) Set(w http.ResponseWriter, sessionID uuid.UUID) error {
	value, err := c.seal(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the cookie in the browser.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

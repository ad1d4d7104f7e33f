package guard

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/logger"
)

// MethodSealed selects authenticated encryption of session tokens.
const MethodSealed = "sealed"

const sealedName = "session"

// keySizes maps the AES-CBC methods to their key length in bytes.
// The short names follow the openssl cipher aliases.
var keySizes = map[string]int{
	"aes128":      16,
	"aes-128-cbc": 16,
	"aes192":      24,
	"aes-192-cbc": 24,
	"aes256":      32,
	"aes-256-cbc": 32,
}

// A Cipher seals plaintext into an opaque token and opens it again.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(token string) ([]byte, error)
}

// NewCipher constructs the Cipher enc describes.
//
// The AES methods encrypt in CBC mode with PKCS#7 padding and base64 the result,
// the scheme openssl enc uses with -K and -iv.
// MethodSealed encrypts with AES-CTR and signs with HMAC-SHA256,
// using Key as the block key and Hash as the hash key.
//
// A key, IV or hash that fails to decode, has the wrong length, or an unknown method,
// is logged and yields an inert Cipher returning its input unchanged.
func NewCipher(enc config.Encryption, log logger.Logger) Cipher {
	c, err := newCipher(enc)
	if err != nil {
		if log != nil {
			log.Error("invalid key and iv, session tokens are not encrypted", &logger.LogContext{
				Error: err,
				Data:  map[string]any{"method": enc.Method},
			})
		}
		return inertCipher{}
	}

	return c
}

func newCipher(enc config.Encryption) (Cipher, error) {
	method := strings.ToLower(enc.Method)
	key, err := hex.DecodeString(enc.Key)
	if err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}

	if method == MethodSealed {
		hash, err := hex.DecodeString(enc.Hash)
		if err != nil {
			return nil, fmt.Errorf("hash: %w", err)
		}

		if len(hash) == 0 {
			return nil, fmt.Errorf("%s requires a hash key", MethodSealed)
		}

		if _, err := aes.NewCipher(key); err != nil {
			return nil, err
		}

		sc := securecookie.New(hash, key).
			MaxAge(0).
			SetSerializer(securecookie.NopEncoder{})
		return sealedCipher{sc}, nil
	}

	size, ok := keySizes[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", enc.Method)
	}

	if len(key) != size {
		return nil, fmt.Errorf("%s requires a %d byte key, got %d", method, size, len(key))
	}

	iv, err := hex.DecodeString(enc.IV)
	if err != nil {
		return nil, fmt.Errorf("iv: %w", err)
	}

	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("iv must be %d bytes, got %d", aes.BlockSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cbcCipher{block: block, iv: iv}, nil
}

type cbcCipher struct {
	block cipher.Block
	iv    []byte
}

func (c cbcCipher) Encrypt(plaintext []byte) (string, error) {
	padded := pad(plaintext, c.block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (c cbcCipher) Decrypt(token string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidSession.WithReference(err)
	}

	size := c.block.BlockSize()
	if len(raw) == 0 || len(raw)%size != 0 {
		return nil, ErrInvalidSession.WithReference("ciphertext is not a whole number of blocks")
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)

	plain, ok := unpad(out, size)
	if !ok {
		return nil, ErrInvalidSession.WithReference("bad padding")
	}

	return plain, nil
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, bool) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}

	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}

	return b[:len(b)-n], true
}

type sealedCipher struct {
	sc *securecookie.SecureCookie
}

func (c sealedCipher) Encrypt(plaintext []byte) (string, error) {
	return c.sc.Encode(sealedName, plaintext)
}

func (c sealedCipher) Decrypt(token string) ([]byte, error) {
	var plain []byte
	if err := c.sc.Decode(sealedName, token, &plain); err != nil {
		return nil, ErrInvalidSession.WithReference(err)
	}

	return plain, nil
}

// inertCipher stands in when the configured cipher cannot be built.
type inertCipher struct{}

func (inertCipher) Encrypt(plaintext []byte) (string, error) { return string(plaintext), nil }
func (inertCipher) Decrypt(token string) ([]byte, error)     { return []byte(token), nil }

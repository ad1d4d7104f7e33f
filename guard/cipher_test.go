package guard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/guard"
)

func TestCipherAES128(t *testing.T) {
	for _, method := range []string{"aes128", "aes-128-cbc", "AES128"} {
		t.Run(method, func(t *testing.T) {
			// Arrange
			l := newLogger()
			c := guard.NewCipher(config.Encryption{Method: method, Key: sampleKey, IV: sampleIV}, l)

			// Act
			tok, err := c.Encrypt([]byte("admin@sample"))

			// Assert
			require.Nil(t, err)
			require.Equal(t, "okFLw+4k9f6CD1HKX4JVfw==", tok)
			require.Empty(t, l.String())

			// Act
			plain, err := c.Decrypt(tok)

			// Assert
			require.Nil(t, err)
			require.Equal(t, "admin@sample", string(plain))
		})
	}
}

func TestCipherAES256(t *testing.T) {
	// Arrange
	c := guard.NewCipher(config.Encryption{
		Method: "aes256",
		Key:    strings.Repeat("ab", 32),
		IV:     sampleIV,
	}, newLogger())

	// Act
	tok, err := c.Encrypt([]byte("exactly sixteen!"))

	// Assert
	require.Nil(t, err)
	require.NotEqual(t, "exactly sixteen!", tok)

	// Act
	plain, err := c.Decrypt(tok)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "exactly sixteen!", string(plain))
}

func TestCipherInert(t *testing.T) {
	for _, tc := range []struct {
		name string
		enc  config.Encryption
	}{
		{"Bad-Key-Hex", config.Encryption{Method: "aes128", Key: "zz", IV: sampleIV}},
		{"Bad-IV-Hex", config.Encryption{Method: "aes128", Key: sampleKey, IV: "not hex"}},
		{"Short-IV", config.Encryption{Method: "aes128", Key: sampleKey, IV: "2B95"}},
		{"Wrong-Key-Size", config.Encryption{Method: "aes256", Key: sampleKey, IV: sampleIV}},
		{"Unknown-Method", config.Encryption{Method: "rot13", Key: sampleKey, IV: sampleIV}},
		{"Sealed-No-Hash", config.Encryption{Method: guard.MethodSealed, Key: sampleKey}},
		{"Sealed-Bad-Key", config.Encryption{Method: guard.MethodSealed, Key: "abcd", Hash: sampleKey}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := newLogger()
			c := guard.NewCipher(tc.enc, l)

			// Act
			tok, err := c.Encrypt([]byte("plain text"))

			// Assert
			require.Nil(t, err)
			require.Equal(t, "plain text", tok)
			require.NotEmpty(t, l.String())

			// Act
			plain, err := c.Decrypt("anything at all")

			// Assert
			require.Nil(t, err)
			require.Equal(t, "anything at all", string(plain))
		})
	}
}

func TestCipherDecryptInvalid(t *testing.T) {
	// Arrange
	c := guard.NewCipher(sampleEncryption, newLogger())
	foreign := guard.NewCipher(config.Encryption{
		Method: "aes128",
		Key:    "000102030405060708090A0B0C0D0E0F",
		IV:     sampleIV,
	}, newLogger())

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Not-Base64", "%%%"},
		{"Partial-Block", "AAAA"},
		{"Foreign-Key", "w/GJFcri6nRLkc6pMh4LIlSceYqkRIaYvtyZDn4FVmBLaCiQLOhE8x01ZFfyDPCLKPxM7v1oBvnbxLnaJNQnHWzywKRC5KmzHN6taIsN6Bo="},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			plain, err := foreign.Decrypt(tc.token)

			// Assert
			require.Nil(t, plain)
			require.ErrorIs(t, err, guard.ErrInvalidSession)
		})
	}

	// Act
	plain, err := c.Decrypt("w/GJFcri6nRLkc6pMh4LIlSceYqkRIaYvtyZDn4FVmBLaCiQLOhE8x01ZFfyDPCLKPxM7v1oBvnbxLnaJNQnHWzywKRC5KmzHN6taIsN6Bo=")

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"user":{"username":"admin@sample","roles":["role1"]},"timestamp":1000}`, string(plain))
}

func TestCipherSealed(t *testing.T) {
	// Arrange
	c := guard.NewCipher(config.Encryption{
		Method: guard.MethodSealed,
		Key:    sampleKey,
		Hash:   strings.Repeat("0f", 32),
	}, newLogger())

	// Act
	tok, err := c.Encrypt([]byte(`{"user":{"username":"admin@sample"}}`))

	// Assert
	require.Nil(t, err)
	require.NotContains(t, tok, "admin@sample")

	// Act
	plain, err := c.Decrypt(tok)

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"user":{"username":"admin@sample"}}`, string(plain))

	// Arrange
	b := []byte(tok)
	if b[10] == 'A' {
		b[10] = 'B'
	} else {
		b[10] = 'A'
	}

	// Act
	plain, err = c.Decrypt(string(b))

	// Assert
	require.Nil(t, plain)
	require.ErrorIs(t, err, guard.ErrInvalidSession)
}

package utils

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	saltedPrefix = "Salted__"
	// base64 of "Salted__"
	legacyCipherPrefix = "U2FsdGVkX1"
	codecKeyLen        = 32
	codecSaltLen       = 8
)

var errEmptyPassphrase = errors.New("credential codec: empty passphrase")

// CredentialCodec reads and writes passphrase encrypted credentials in the
// OpenSSL "Salted__" format (AES-256-CBC, MD5 key derivation). Stored passwords
// from the previous system use it; new passwords are bcrypt hashes.
type CredentialCodec struct {
	passphrase []byte
}

func NewCredentialCodec(passphrase string) (*CredentialCodec, error) {
	if passphrase == "" {
		return nil, errEmptyPassphrase
	}
	return &CredentialCodec{passphrase: []byte(passphrase)}, nil
}

// Encrypt returns base64("Salted__" | salt | ciphertext).
func (c *CredentialCodec) Encrypt(plain string) (string, error) {
	salt := make([]byte, codecSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credential codec: salt: %w", err)
	}

	key, iv := deriveKeyIV(c.passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("credential codec: %w", err)
	}

	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	buf := make([]byte, 0, len(saltedPrefix)+codecSaltLen+len(out))
	buf = append(buf, saltedPrefix...)
	buf = append(buf, salt...)
	buf = append(buf, out...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt returns the plain text, or "" when the input is not a valid ciphertext
// for this passphrase.
func (c *CredentialCodec) Decrypt(encoded string) string {
	plain, _ := c.decrypt(encoded)
	return plain
}

// Matches decrypts encoded and compares it with candidate in constant time.
// An empty candidate matches a ciphertext of the empty string.
func (c *CredentialCodec) Matches(candidate, encoded string) bool {
	plain, ok := c.decrypt(encoded)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(candidate)) == 1
}

func (c *CredentialCodec) decrypt(encoded string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	headerLen := len(saltedPrefix) + codecSaltLen
	if len(raw) < headerLen+aes.BlockSize || !bytes.HasPrefix(raw, []byte(saltedPrefix)) {
		return "", false
	}
	body := raw[headerLen:]
	if len(body)%aes.BlockSize != 0 {
		return "", false
	}

	key, iv := deriveKeyIV(c.passphrase, raw[len(saltedPrefix):headerLen])
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", false
	}
	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)

	plain, ok := pkcs7Unpad(out, aes.BlockSize)
	if !ok {
		return "", false
	}
	return string(plain), true
}

func IsLegacyCiphertext(s string) bool {
	return strings.HasPrefix(s, legacyCipherPrefix)
}

// deriveKeyIV is OpenSSL's EVP_BytesToKey with MD5 and one iteration.
func deriveKeyIV(passphrase, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < codecKeyLen+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:codecKeyLen], derived[codecKeyLen : codecKeyLen+aes.BlockSize]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}

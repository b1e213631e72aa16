package n8ncrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
)

// Envelope layout (after base64 decoding):
// [magic:8 "Salted__"][salt:8][ciphertext:16*n, n >= 1]
const (
	magicLen  = 8
	saltLen   = 8
	headerLen = magicLen + saltLen

	// KeyLen and IVLen are fixed by n8n's cipher choice (AES-256-CBC).
	KeyLen = 32
	IVLen  = 16
)

var magic = []byte("Salted__")

// Decrypt recovers the plaintext from a base64-encoded salted envelope
// using the given password. The password is the shared secret of the
// producing instance (N8N_ENCRYPTION_KEY); pass it in explicitly rather
// than reading it from the environment here.
//
// Errors unwrap to ErrDecode, ErrMalformedBlob, or ErrBadPadding. A wrong
// password almost always surfaces as ErrBadPadding; in the rare case the
// garbage plaintext ends in valid padding, Decrypt succeeds and the caller
// discovers the problem when the payload fails to parse.
func Decrypt(blob, password string, opts ...Option) ([]byte, error) {
	cfg := &config{iterations: defaultIterations}
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(raw) < headerLen || !bytes.Equal(raw[:magicLen], magic) {
		return nil, fmt.Errorf("%w: missing %q header", ErrMalformedBlob, magic)
	}
	salt := raw[magicLen:headerLen]
	ciphertext := raw[headerLen:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of %d",
			ErrMalformedBlob, len(ciphertext), aes.BlockSize)
	}

	var key, iv []byte
	switch cfg.kdf {
	case KDFPBKDF2:
		key, iv = pbkdf2KeyIV([]byte(password), salt, cfg.iterations, KeyLen, IVLen)
	default:
		key, iv = BytesToKey([]byte(password), salt, KeyLen, IVLen)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		// Unreachable: KeyLen is a valid AES key size.
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

// pkcs7Unpad strips PKCS#7 padding, validating every pad byte.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: data length %d", ErrBadPadding, len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad length byte %d", ErrBadPadding, n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: inconsistent pad bytes", ErrBadPadding)
		}
	}
	return data[:len(data)-n], nil
}

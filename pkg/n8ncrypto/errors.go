package n8ncrypto

import "errors"

var (
	// ErrDecode indicates the blob is not valid base64.
	ErrDecode = errors.New("n8ncrypto: invalid base64 blob")

	// ErrMalformedBlob indicates the decoded blob does not carry the
	// OpenSSL "Salted__" envelope: bad magic, truncated header, or a
	// ciphertext whose length is not a positive multiple of the AES
	// block size.
	ErrMalformedBlob = errors.New("n8ncrypto: malformed blob")

	// ErrBadPadding indicates PKCS#7 padding validation failed after
	// decryption. With a well-formed blob this almost always means the
	// encryption key is wrong, not that the data is corrupt.
	ErrBadPadding = errors.New("n8ncrypto: invalid padding")
)

package n8ncrypto

import (
	"crypto/md5"
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

// BytesToKey derives an AES key and IV from a password and salt the way
// OpenSSL's EVP_BytesToKey does with MD5 and no iteration count:
//
//	D_0 = MD5(password || salt)
//	D_n = MD5(D_{n-1} || password || salt)
//
// Digest blocks are concatenated until keyLen+ivLen bytes are available;
// the key is the first keyLen bytes and the IV the next ivLen. Exactly one
// hash application per block, so this is weak stretching; it exists only
// for compatibility with the legacy export format.
//
// The function is pure and deterministic and has no error conditions.
func BytesToKey(password, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var block []byte
	material := make([]byte, 0, keyLen+ivLen)
	for len(material) < keyLen+ivLen {
		h := md5.New()
		h.Write(block)
		h.Write(password)
		h.Write(salt)
		block = h.Sum(nil)
		material = append(material, block...)
	}
	return material[:keyLen], material[keyLen : keyLen+ivLen]
}

// pbkdf2KeyIV derives key+IV the way "openssl enc -pbkdf2 -md sha1" does:
// one PBKDF2-HMAC-SHA1 stretch producing keyLen+ivLen bytes, split in order.
func pbkdf2KeyIV(password, salt []byte, iter, keyLen, ivLen int) (key, iv []byte) {
	material := pbkdf2.Key(password, salt, iter, keyLen+ivLen, sha1.New)
	return material[:keyLen], material[keyLen : keyLen+ivLen]
}

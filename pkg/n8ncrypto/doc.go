// Package n8ncrypto decrypts credential payloads exported from an n8n
// instance.
//
// n8n encrypts each credential's data field as a CryptoJS-compatible
// OpenSSL envelope: base64("Salted__" + salt[8] + ciphertext), with the
// AES-256-CBC key and IV derived from the instance's N8N_ENCRYPTION_KEY
// via EVP_BytesToKey (MD5, one hash application per block). Decrypt
// reverses that envelope and strips the PKCS#7 padding.
//
// The package is pure: key material is derived fresh per call and nothing
// is cached or read from the environment.
package n8ncrypto

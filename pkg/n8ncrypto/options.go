package n8ncrypto

// KDF selects the key-derivation scheme used by Decrypt.
type KDF int

const (
	// KDFLegacy is OpenSSL EVP_BytesToKey with MD5, the scheme n8n's
	// CryptoJS-era exports actually use. This is the default.
	KDFLegacy KDF = iota

	// KDFPBKDF2 is PBKDF2-HMAC-SHA1 producing key and IV in a single
	// stretch, matching "openssl enc -pbkdf2 -md sha1". Only useful if
	// the producing system ever switches to an iterated KDF; validate
	// against a real sample before relying on it.
	KDFPBKDF2
)

// defaultIterations matches the CryptoJS PBKDF2 default.
const defaultIterations = 1000

type config struct {
	kdf        KDF
	iterations int
}

// Option configures a Decrypt call.
type Option func(*config)

// WithKDF selects the key-derivation scheme.
func WithKDF(k KDF) Option {
	return func(c *config) { c.kdf = k }
}

// WithIterations sets the PBKDF2 iteration count. Ignored by KDFLegacy,
// which always applies the hash exactly once per block.
func WithIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.iterations = n
		}
	}
}

package kalshi

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Signer produces the per-request RSA-PSS signature the Kalshi API expects.
// The private key is read once at startup and held in memory only; it is
// never logged or written anywhere.
type Signer struct {
	key *rsa.PrivateKey
}

// LoadSigner reads an RSA private key in PEM form (PKCS#8 or PKCS#1).
func LoadSigner(path string) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in private key file")
	}

	key, err := parseRSAKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	return &Signer{key: key}, nil
}

// NewSigner wraps an already parsed key. Used by tests.
func NewSigner(key *rsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

func parseRSAKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return key, nil
}

// Sign signs "<unix_ts><METHOD><path>" with RSA-PSS over SHA-256, using the
// maximum salt length, and returns the unix timestamp string and the
// base64-encoded signature. A fresh signature is computed for every call;
// signatures are never reused across requests.
func (s *Signer) Sign(method, path string, at time.Time) (timestamp, signature string, err error) {
	timestamp = strconv.FormatInt(at.Unix(), 10)
	message := timestamp + method + path

	digest := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto, // as large as the key allows
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to sign request: %w", err)
	}

	return timestamp, base64.StdEncoding.EncodeToString(sig), nil
}

package wallet

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

var (
	ErrInvalidCredential = errors.New("wallet: entity secret must be 64 hex characters")
	ErrInvalidPublicKey  = errors.New("wallet: provider public key is not a valid RSA key")
)

// ValidateCredential checks the entity secret shape without contacting the provider.
func ValidateCredential(hexSecret string) error {
	if len(hexSecret) != 64 {
		return ErrInvalidCredential
	}
	if _, err := hex.DecodeString(hexSecret); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// encryptCredential produces the per-request ciphertext: RSA-OAEP(SHA-256) over the
// raw secret bytes, base64 encoded. OAEP is randomized so every call differs.
func encryptCredential(hexSecret, publicKeyPEM string) (string, error) {
	if err := ValidateCredential(hexSecret); err != nil {
		return "", err
	}
	secret, _ := hex.DecodeString(hexSecret)

	pub, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}

	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, secret, nil)
	if err != nil {
		return "", fmt.Errorf("wallet: encrypt entity secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ct), nil
}

func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, ErrInvalidPublicKey
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		if rsaKey, ok := key.(*rsa.PublicKey); ok {
			return rsaKey, nil
		}
		return nil, ErrInvalidPublicKey
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	return key, nil
}

// Package keycrypto is the cryptographic backend of the key generator: it
// generates RSA and EC private keys and serializes them as PEM-encoded
// PKCS#8, optionally encrypted under a password (PBES2).
package keycrypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/youmark/pkcs8"

	"github.com/NXPNexus/spsdk/internal/iohelpers"
)

const (
	pemTypePrivateKey          = "PRIVATE KEY"
	pemTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	pemTypePublicKey           = "PUBLIC KEY"
)

// Tool is the real backend. The provisioning workflow only sees it through
// the provision.KeyTool interface.
type Tool struct{}

func (Tool) GenerateRSAPrivateKey(bits int) (crypto.Signer, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA-%d private key: %w", bits, err)
	}
	return key, nil
}

func (Tool) GenerateECPrivateKey(curveName string) (crypto.Signer, error) {
	curve, found := CurveByName(curveName)
	if !found {
		return nil, fmt.Errorf("unknown elliptic curve %q", curveName)
	}
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s private key: %w", curveName, err)
	}
	return key, nil
}

// SavePrivateKey writes key to path as PEM-encoded PKCS#8, mode 0600. With a
// password set, the key is encrypted (PBES2) and the PEM type says so.
func (Tool) SavePrivateKey(key crypto.Signer, path string, password Password) error {
	var block pem.Block
	if password.IsSet() {
		der, err := pkcs8.MarshalPrivateKey(key, password.Bytes(), pkcs8.DefaultOpts)
		if err != nil {
			return fmt.Errorf("failed to encrypt private key: %w", err)
		}
		block = pem.Block{Type: pemTypeEncryptedPrivateKey, Bytes: der}
	} else {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return fmt.Errorf("failed to encode private key: %w", err)
		}
		block = pem.Block{Type: pemTypePrivateKey, Bytes: der}
	}
	return iohelpers.WriteFile(path, true, pem.EncodeToMemory(&block))
}

// SavePublicKey writes pub to path as PEM-encoded PKIX. Public keys carry no
// confidentiality requirement and are never encrypted.
func (Tool) SavePublicKey(pub crypto.PublicKey, path string) error {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return fmt.Errorf("failed to encode public key: %w", err)
	}
	block := pem.Block{Type: pemTypePublicKey, Bytes: der}
	return iohelpers.WriteFile(path, false, pem.EncodeToMemory(&block))
}

// LoadPrivateKey reads back a private key written by SavePrivateKey. An
// encrypted key requires the password it was encrypted under; a cleartext
// key requires no password at all.
func LoadPrivateKey(path string, password Password) (crypto.Signer, error) {
	raw, err := iohelpers.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM data in %q", path)
	}

	var parsed any
	switch block.Type {
	case pemTypeEncryptedPrivateKey:
		if !password.IsSet() {
			return nil, fmt.Errorf("private key %q is encrypted and no password was given", path)
		}
		parsed, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, password.Bytes())
	case pemTypePrivateKey:
		parsed, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unexpected PEM block type %q in %q", block.Type, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %q: %w", path, err)
	}

	signer, ok := parsed.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("private key %q has unsupported type %T", path, parsed)
	}
	return signer, nil
}

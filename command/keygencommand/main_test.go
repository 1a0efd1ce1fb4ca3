package keygencommand

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NXPNexus/spsdk/internal/keycrypto"
	"github.com/NXPNexus/spsdk/internal/keyspec"
)

func resolve(t *testing.T, token string) keyspec.Spec {
	t.Helper()
	catalog := keyspec.New(keycrypto.SupportedCurves())
	spec, err := catalog.Resolve(token)
	require.NoError(t, err)
	return spec
}

func TestDefaultKeyTypeResolves(t *testing.T) {
	spec := resolve(t, defaultKeyType)
	assert.Equal(t, keyspec.KindRSA, spec.Kind)
	assert.Equal(t, 2048, spec.Bits)
}

func TestMainGeneratesRSAKeyPair(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.pem")

	code := Main(context.Background(), path, resolve(t, "rsa2048"), keycrypto.Password{}, false)
	require.Zero(t, code)

	key, err := keycrypto.LoadPrivateKey(path, keycrypto.Password{})
	require.NoError(t, err)
	rsaKey, ok := key.(*rsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, 2048, rsaKey.N.BitLen())
	assert.FileExists(t, filepath.Join(dir, "key.pub"))
}

func TestMainRefusesSecondRunWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.pem")
	spec := resolve(t, "secp256r1")

	code := Main(context.Background(), path, spec, keycrypto.Password{}, false)
	require.Zero(t, code)
	firstPrivate, err := os.ReadFile(path)
	require.NoError(t, err)
	firstPublic, err := os.ReadFile(filepath.Join(dir, "key.pub"))
	require.NoError(t, err)

	code = Main(context.Background(), path, spec, keycrypto.Password{}, false)
	assert.NotZero(t, code)

	// The first run's files survive the refused second run untouched.
	secondPrivate, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, firstPrivate, secondPrivate)
	secondPublic, err := os.ReadFile(filepath.Join(dir, "key.pub"))
	require.NoError(t, err)
	assert.Equal(t, firstPublic, secondPublic)
}

func TestMainForceOverwritesWithEncryptedECKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dev.pem")
	publicPath := filepath.Join(dir, "dev.pub")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o600))
	require.NoError(t, os.WriteFile(publicPath, []byte("stale\n"), 0o666))

	code := Main(context.Background(), path, resolve(t, "secp256r1"), keycrypto.NewPassword("s3cret"), true)
	require.Zero(t, code)

	_, err := keycrypto.LoadPrivateKey(path, keycrypto.NewPassword("wrong"))
	require.Error(t, err)

	key, err := keycrypto.LoadPrivateKey(path, keycrypto.NewPassword("s3cret"))
	require.NoError(t, err)
	ecKey, ok := key.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P256(), ecKey.Curve)

	// The public key is never encrypted, password or not.
	raw, err := os.ReadFile(publicPath)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	assert.Equal(t, "PUBLIC KEY", block.Type)
}

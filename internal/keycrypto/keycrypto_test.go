package keycrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedCurves(t *testing.T) {
	curves := SupportedCurves()
	assert.Equal(t, []string{"secp224r1", "secp256r1", "secp384r1", "secp521r1"}, curves)
	for _, name := range curves {
		_, found := CurveByName(name)
		assert.True(t, found, "curve %q", name)
	}
}

func TestGenerateECPrivateKey(t *testing.T) {
	key, err := Tool{}.GenerateECPrivateKey("secp384r1")
	require.NoError(t, err)
	ecKey, ok := key.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P384(), ecKey.Curve)
}

func TestGenerateECPrivateKeyUnknownCurve(t *testing.T) {
	_, err := Tool{}.GenerateECPrivateKey("secp999r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown elliptic curve")
}

func TestGenerateRSAPrivateKey(t *testing.T) {
	key, err := Tool{}.GenerateRSAPrivateKey(2048)
	require.NoError(t, err)
	rsaKey, ok := key.(*rsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, 2048, rsaKey.N.BitLen())
}

func TestSaveLoadPrivateKeyCleartext(t *testing.T) {
	tool := Tool{}
	key, err := tool.GenerateECPrivateKey("secp256r1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, tool.SavePrivateKey(key, path, Password{}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadPrivateKey(path, Password{})
	require.NoError(t, err)
	loadedKey, ok := loaded.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.True(t, loadedKey.PublicKey.Equal(key.Public()))
}

func TestSaveLoadPrivateKeyEncrypted(t *testing.T) {
	tool := Tool{}
	key, err := tool.GenerateECPrivateKey("secp256r1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, tool.SavePrivateKey(key, path, NewPassword("s3cret")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	assert.Equal(t, "ENCRYPTED PRIVATE KEY", block.Type)

	// Without the password, or with the wrong one, the key stays sealed.
	_, err = LoadPrivateKey(path, Password{})
	require.Error(t, err)
	_, err = LoadPrivateKey(path, NewPassword("wrong"))
	require.Error(t, err)

	loaded, err := LoadPrivateKey(path, NewPassword("s3cret"))
	require.NoError(t, err)
	loadedKey, ok := loaded.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.True(t, loadedKey.PublicKey.Equal(key.Public()))
}

func TestSavePrivateKeyEmptyPasswordStillEncrypts(t *testing.T) {
	tool := Tool{}
	key, err := tool.GenerateECPrivateKey("secp256r1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, tool.SavePrivateKey(key, path, NewPassword("")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	assert.Equal(t, "ENCRYPTED PRIVATE KEY", block.Type)

	_, err = LoadPrivateKey(path, NewPassword(""))
	require.NoError(t, err)
}

func TestSavePublicKeyNeverEncrypted(t *testing.T) {
	tool := Tool{}
	key, err := tool.GenerateECPrivateKey("secp256r1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.pub")
	require.NoError(t, tool.SavePublicKey(key.Public(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	assert.Equal(t, "PUBLIC KEY", block.Type)

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	require.NoError(t, err)
	ecPub, ok := pub.(*ecdsa.PublicKey)
	require.True(t, ok)
	assert.True(t, ecPub.Equal(key.Public()))
}

func TestPasswordRedaction(t *testing.T) {
	assert.Equal(t, "(unset)", Password{}.String())
	assert.Equal(t, "(set)", NewPassword("hunter2").String())
	assert.False(t, Password{}.IsSet())
	assert.True(t, NewPassword("").IsSet())
}

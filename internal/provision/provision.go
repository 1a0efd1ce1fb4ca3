// Package provision turns a resolved key spec into a pair of key files on
// disk: <name>.<ext> holds the private key, <name>.pub the public key.
package provision

import (
	"context"
	"crypto"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NXPNexus/spsdk/internal/keycrypto"
	"github.com/NXPNexus/spsdk/internal/keyspec"
)

const publicKeyExt = ".pub"

// KeyTool is the capability surface of the cryptographic backend. The
// workflow never inspects key material, it only moves opaque handles between
// these calls.
type KeyTool interface {
	GenerateRSAPrivateKey(bits int) (crypto.Signer, error)
	GenerateECPrivateKey(curveName string) (crypto.Signer, error)
	SavePrivateKey(key crypto.Signer, path string, password keycrypto.Password) error
	SavePublicKey(pub crypto.PublicKey, path string) error
}

// PublicKeyPath derives the public key path from the private key path by
// swapping the extension for ".pub". Base name and directory never change.
func PublicKeyPath(privatePath string) string {
	ext := filepath.Ext(privatePath)
	return strings.TrimSuffix(privatePath, ext) + publicKeyExt
}

type Provisioner struct {
	Tool KeyTool
}

// Provision generates a key pair per spec and writes it to path and
// PublicKeyPath(path). Without force, pre-existing files at either path and
// a missing destination directory are errors; with force, files are
// overwritten and the directory is created. Both existence checks happen
// before any key material is generated, so a refusal never leaves a partial
// pair behind. The private key is written first; if the public key write
// then fails, the private key file stays on disk and the error names the
// public path.
func (p Provisioner) Provision(ctx context.Context, path string, spec keyspec.Spec, password keycrypto.Password, force bool) error {
	logger := zerolog.Ctx(ctx)

	if filepath.Ext(path) == publicKeyExt {
		return InvalidDestinationError{
			Path:   path,
			Reason: "private key path must not use the " + publicKeyExt + " extension",
		}
	}
	publicPath := PublicKeyPath(path)

	if err := checkDestinationDir(path, force); err != nil {
		return err
	}
	if !force {
		for _, outPath := range []string{path, publicPath} {
			if _, err := os.Stat(outPath); err == nil {
				return FileExistsError{Path: outPath}
			}
		}
	}

	var (
		key crypto.Signer
		err error
	)
	switch spec.Kind {
	case keyspec.KindRSA:
		logger.Info().Int("bits", spec.Bits).Msg("generating RSA private key")
		key, err = p.Tool.GenerateRSAPrivateKey(spec.Bits)
	case keyspec.KindEC:
		logger.Info().Str("curve", spec.Curve).Msg("generating ECC private key")
		key, err = p.Tool.GenerateECPrivateKey(spec.Curve)
	default:
		return fmt.Errorf("unknown key kind %v", spec.Kind)
	}
	if err != nil {
		return CollaboratorError{Op: "failed to generate private key", Err: err}
	}

	logger.Info().
		Str("path", path).
		Stringer("password", password).
		Msg("saving private key")
	if err := p.Tool.SavePrivateKey(key, path, password); err != nil {
		return PersistError{Path: path, Err: err}
	}

	logger.Info().Str("path", publicPath).Msg("saving public key")
	if err := p.Tool.SavePublicKey(key.Public(), publicPath); err != nil {
		return PersistError{Path: publicPath, Err: err}
	}
	return nil
}

func checkDestinationDir(path string, create bool) error {
	dirPath := filepath.Dir(path)
	info, err := os.Stat(dirPath)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return InvalidDestinationError{Path: dirPath, Reason: "not a directory"}
	case !os.IsNotExist(err):
		return InvalidDestinationError{Path: dirPath, Reason: err.Error()}
	case !create:
		return InvalidDestinationError{Path: dirPath, Reason: "directory does not exist, use --force to create it"}
	}
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return InvalidDestinationError{Path: dirPath, Reason: err.Error()}
	}
	return nil
}

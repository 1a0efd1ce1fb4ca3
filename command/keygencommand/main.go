package keygencommand

import (
	"context"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"

	"github.com/NXPNexus/spsdk/command"
	"github.com/NXPNexus/spsdk/internal/keycrypto"
	"github.com/NXPNexus/spsdk/internal/keyspec"
	"github.com/NXPNexus/spsdk/internal/provision"
)

const defaultKeyType = "rsa2048"

type keygenFactory struct {
	command.BaseFactory
}

func (keygenFactory) Name() string {
	return "keygen"
}

func (keygenFactory) Aliases() []string {
	return []string{"genkey", "generate-key"}
}

func (keygenFactory) Description() string {
	return "Generates an RSA or ECC key pair for the device debug authentication flow."
}

func (keygenFactory) New(dispatcher command.Dispatcher) (*getopt.Set, command.MainFunc) {
	catalog := keyspec.New(keycrypto.SupportedCurves())

	var (
		keyType  = defaultKeyType
		password string
		force    bool
		logLevel = zerolog.WarnLevel.String()
	)

	options := getopt.New()
	options.SetParameters("<output-path>")
	options.FlagLong(&keyType, "key-type", 'k',
		"key type to generate, one of: "+strings.Join(catalog.Tokens(), ", ")+
			"; the DAT protocol version dictates the required type"+
			" (1.0: rsa2048, 1.1: rsa4096, 2.0: secp256r1, 2.1: secp384r1, 2.2: secp521r1)")
	passwordOpt := options.FlagLong(&password, "password", 0,
		"encrypt the private key file with this password; omit for an unencrypted key")
	options.FlagLong(&force, "force", 0,
		"overwrite existing output files and create a missing destination directory")
	options.FlagLong(&logLevel, "debug", 'd',
		"log level: trace, debug, info, warn, error, fatal, panic")

	return options, func(ctx context.Context) int {
		logger := zerolog.Ctx(ctx)

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			logger.Error().
				Str("level", logLevel).
				Msg("unknown value for -d / --debug flag")
			return 1
		}
		zerolog.SetGlobalLevel(level)

		switch n := options.NArgs(); {
		case n < 1:
			logger.Error().Msg("missing required <output-path> argument")
			return 1
		case n > 1:
			logger.Error().Msgf("found %d unexpected positional arguments", n-1)
			return 1
		}
		path := options.Arg(0)

		spec, err := catalog.Resolve(keyType)
		if err != nil {
			logger.Error().
				Err(err).
				Str("choices", strings.Join(catalog.Tokens(), ", ")).
				Msg("invalid value for -k / --key-type flag")
			return 1
		}

		pw := keycrypto.Password{}
		if passwordOpt.Seen() {
			pw = keycrypto.NewPassword(password)
		}

		return Main(ctx, path, spec, pw, force)
	}
}

var Factory command.Factory = keygenFactory{}

func Main(ctx context.Context, path string, spec keyspec.Spec, password keycrypto.Password, force bool) int {
	logger := zerolog.Ctx(ctx).
		With().
		Str("privateKeyFile", path).
		Str("publicKeyFile", provision.PublicKeyPath(path)).
		Stringer("keyType", spec).
		Logger()
	ctx = logger.WithContext(ctx)

	provisioner := provision.Provisioner{Tool: keycrypto.Tool{}}
	if err := provisioner.Provision(ctx, path, spec, password, force); err != nil {
		logger.Error().Err(err).Msg("failed to generate key pair")
		return 1
	}
	return 0
}

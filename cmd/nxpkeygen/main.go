// Command nxpkeygen generates RSA and ECC key pairs for the NXP debug
// authentication flow. The private key lands in the file named on the
// command line, the matching public key next to it with a .pub extension.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/NXPNexus/spsdk/command"
	"github.com/NXPNexus/spsdk/command/helpcommand"
	"github.com/NXPNexus/spsdk/command/keygencommand"
	"github.com/NXPNexus/spsdk/command/versioncommand"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
	ctx := logger.WithContext(context.Background())

	dispatcher := command.MakeDispatcher(
		"nxpkeygen",
		"Tool for generating debug authentication key pairs.",
		keygencommand.Factory,
		versioncommand.Factory,
		helpcommand.Factory,
	)
	os.Exit(dispatcher.Main(ctx, os.Args))
}

package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command/genesis"
	"github.com/dogechain-lab/objectchain/command/helper"
	"github.com/dogechain-lab/objectchain/command/secrets"
	"github.com/dogechain-lab/objectchain/command/server"
	"github.com/dogechain-lab/objectchain/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Short: "Objectchain runs authorities of a Byzantine consistent object ledger",
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		secrets.GetCommand(),
		genesis.GetCommand(),
		server.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}

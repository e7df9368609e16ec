package genesis

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command"
)

func GetCommand() *cobra.Command {
	genesisCmd := &cobra.Command{
		Use:     "genesis",
		Short:   "Generates the genesis file with the committee and the initial objects",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(genesisCmd)

	return genesisCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.genesisPath,
		dirFlag,
		fmt.Sprintf("./%s", command.DefaultGenesisFileName),
		"the path of the generated genesis file",
	)

	cmd.Flags().StringVar(
		&params.name,
		nameFlag,
		command.DefaultChainName,
		"the name for the network",
	)

	cmd.Flags().StringArrayVar(
		&params.authoritiesRaw,
		authorityFlag,
		[]string{},
		"committee member and voting weight (format: <authority name>[:<weight>]). "+
			"This flag can be used multiple times",
	)

	cmd.Flags().StringArrayVar(
		&params.authorityDirs,
		authorityDirFlag,
		[]string{},
		"data directory holding a local authority key, added with weight 1. "+
			"This flag can be used multiple times",
	)

	cmd.Flags().StringArrayVar(
		&params.coinsRaw,
		coinFlag,
		[]string{},
		fmt.Sprintf(
			"gas coin (format: <owner>[:<balance>[:<object id>]]). Default balance: %d",
			command.DefaultCoinBalance,
		),
	)

	cmd.Flags().StringArrayVar(
		&params.objectsRaw,
		objectFlag,
		[]string{},
		"ObjectBasics object (format: <owner>[:<value>[:<object id>]])",
	)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	if err := params.validateFlags(); err != nil {
		return err
	}

	return params.initRawParams()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	if err := params.generateGenesis(); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}

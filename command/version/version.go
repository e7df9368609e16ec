package version

import (
	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/versioning"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current objectchain version",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	outputter.SetCommandResult(
		&VersionResult{
			Version:   versioning.Version,
			Commit:    versioning.Commit,
			BuildTime: versioning.BuildTime,
			Client:    versioning.ClientVersion(),
		},
	)
}

package generate

import (
	"github.com/spf13/cobra"

	"github.com/dogechain-lab/objectchain/command"
	"github.com/dogechain-lab/objectchain/command/helper"
)

func GetCommand() *cobra.Command {
	secretsGenerateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Initializes the secrets manager configuration in the provided directory.",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(secretsGenerateCmd)
	helper.SetRequiredFlags(secretsGenerateCmd, []string{typeFlag})

	return secretsGenerateCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.dir,
		dirFlag,
		defaultConfigFileName,
		"the directory for the secrets manager configuration file",
	)

	cmd.Flags().StringVar(
		&params.token,
		tokenFlag,
		"",
		"the access token for the service",
	)

	cmd.Flags().StringVar(
		&params.serverURL,
		serverURLFlag,
		"",
		"the server URL for the service",
	)

	cmd.Flags().StringVar(
		&params.serviceType,
		typeFlag,
		"",
		"the type of the secrets manager (hashicorp-vault, aws-ssm, local)",
	)

	cmd.Flags().StringVar(
		&params.name,
		nameFlag,
		"",
		"the name of the node for on-service record keeping",
	)

	cmd.Flags().StringVar(
		&params.namespace,
		namespaceFlag,
		"",
		"the namespace for the service",
	)

	cmd.Flags().StringArrayVar(
		&params.extra,
		extraFlag,
		[]string{},
		"extra service settings (format: <key>=<value>), e.g. region=us-east-1 for aws-ssm",
	)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	if err := params.writeSecretsConfig(); err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(params.getResult())
}

package main

import "github.com/spf13/cobra"

func newRootCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaultctl",
		Short: "Vaultctl is the command-line client for the MangaVault gallery",
	}

	cmd.AddCommand(
		newRegisterCmd(cfg),
		newLoginCmd(cfg),
		newUploadCmd(cfg),
		newImagesCmd(cfg),
		newShowCmd(cfg),
		newDeleteCmd(cfg),
	)

	return cmd
}

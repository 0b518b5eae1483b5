package cmd

import (
	"github.com/sigildev/sigil/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - file type verification by magic number",
	}

	rootCmd.AddCommand(DefineVerifyCommand())
	rootCmd.AddCommand(DefineFormatsCommand())

	return rootCmd.Execute()
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/tendermint/tendermint/libs/cli"
)

func main() {
	rootCmd := createEmissionsdCmd()
	executor := cli.PrepareBaseCmd(rootCmd, "EMD", DefaultNodeHome)
	err := executor.Execute()
	if err != nil {
		panic(err)
	}
}

func createEmissionsdCmd() *cobra.Command {
	cobra.EnableCommandSorting = false
	ctx := NewDefaultContext()
	rootCmd := &cobra.Command{
		Use:               "emissionsd",
		Short:             "Token emission schedule daemon (server)",
		PersistentPreRunE: PersistentPreRunEFn(ctx),
	}
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "Log level")
	rootCmd.AddCommand(InitCmd(ctx, DefaultNodeHome))
	rootCmd.AddCommand(StartCmd(ctx))
	rootCmd.AddCommand(QueryCmd(ctx))
	rootCmd.AddCommand(ConfigCmd(DefaultNodeHome))
	rootCmd.AddCommand(VersionCmd())
	return rootCmd
}

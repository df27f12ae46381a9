package main

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gezibash/geoclient/internal/cli"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func newVersionCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(v.GetString("output"))
			if err != nil {
				return err
			}
			return cli.NewOutput(format, cmd.OutOrStdout()).KV("version").
				Set("Version", version).
				Set("Commit", commit).
				Set("Built", buildDate).
				Set("Go", runtime.Version()).
				Render()
		},
	}
}

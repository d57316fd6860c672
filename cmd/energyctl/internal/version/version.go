package version

import (
	"fmt"

	"github.com/NilFoundation/energyctl/common/version"
	"github.com/spf13/cobra"
)

const versionTitle = "Energy factory CLI"

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Get current version",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.BuildVersionString(versionTitle))
		},
	}
}

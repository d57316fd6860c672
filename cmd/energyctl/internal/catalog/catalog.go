package catalog

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "catalog",
		Short:        "List the contract endpoints with their arguments and results",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Print(cmd.OutOrStdout())
		},
	}
}

// Print writes one line per endpoint: name, kind, payment, arguments and result.
func Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range contracts.Endpoints() {
		desc := e.Descriptor()

		slots := make([]string, len(desc.Args))
		for i, slot := range desc.Args {
			slots[i] = slot.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t(%s)\t-> %s\n",
			desc.Endpoint, desc.Kind, desc.Payment, strings.Join(slots, ", "), desc.Result)
	}
	return tw.Flush()
}

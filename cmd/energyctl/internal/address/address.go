package address

import (
	"fmt"

	"github.com/NilFoundation/energyctl/cli/service"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/config"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/state"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("addressCommand")

const balanceFlag = "balance"

func GetCommand(cfg *common.Config) *cobra.Command {
	var withBalance bool

	cmd := &cobra.Command{
		Use:          "address",
		Short:        "Print the wallet address and the known contract address",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, cfg, withBalance)
		},
	}
	cmd.Flags().BoolVar(&withBalance, balanceFlag, false, "Also fetch the wallet nonce and balance from the gateway")
	return cmd
}

func runCommand(cmd *cobra.Command, cfg *common.Config, withBalance bool) error {
	w, err := common.ResolveWallet(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !config.Quiet {
		fmt.Fprint(out, "Wallet: ")
	}
	fmt.Fprintln(out, w.Address())

	registry, err := state.Load(state.NewFileStorage(cfg.StateFile))
	if err != nil {
		return err
	}
	if contract, err := registry.CurrentAddress(); err == nil {
		if !config.Quiet {
			fmt.Fprint(out, "Contract: ")
		}
		fmt.Fprintln(out, contract)
	}

	if !withBalance {
		return nil
	}

	srv := service.NewService(common.GetGatewayClient(), w, registry, nil)
	account, err := srv.GetAccount(cmd.Context())
	if err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "Nonce: %d\nBalance: ", account.Nonce)
	}
	fmt.Fprintln(out, account.Balance)
	return nil
}

package endpoint

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/NilFoundation/energyctl/cli/service"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/config"
	"github.com/NilFoundation/energyctl/common/concurrent"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/state"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("endpointCommand")

const (
	placeholderFlag = "placeholder"
	gasLimitFlag    = "gas-limit"
	paymentFlag     = "payment"
	valueFlag       = "value"
	codeFlag        = "code"
	upgradeableFlag = "upgradeable"
	readableFlag    = "readable"
	payableFlag     = "payable"
	payableByScFlag = "payable-by-sc"
)

type params struct {
	placeholder bool
	gasLimit    uint64
	payment     types.PaymentFlag
	value       types.Value
	code        string
	upgradeable bool
	readable    bool
	payable     bool
	payableBySc bool
}

// GetCommands returns one command per contract endpoint, named exactly as the endpoint.
func GetCommands(cfg *common.Config) []*cobra.Command {
	endpoints := contracts.Endpoints()
	cmds := make([]*cobra.Command, 0, len(endpoints))
	for _, e := range endpoints {
		cmds = append(cmds, GetCommand(cfg, e.Descriptor()))
	}
	return cmds
}

func GetCommand(cfg *common.Config, desc contracts.Descriptor) *cobra.Command {
	p := &params{}

	cmd := &cobra.Command{
		Use:   usage(desc),
		Short: short(desc),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, args, cfg, desc, p)
		},
		SilenceUsage: true,
	}

	setFlags(cmd, desc, p)
	return cmd
}

func setFlags(cmd *cobra.Command, desc contracts.Descriptor, p *params) {
	cmd.Flags().BoolVar(
		&p.placeholder,
		placeholderFlag,
		false,
		"Ignore positional arguments and send zero values for every argument",
	)

	if desc.Kind == contracts.KindReadOnly {
		return
	}

	cmd.Flags().Uint64Var(
		&p.gasLimit,
		gasLimitFlag,
		0,
		fmt.Sprintf("Execution gas limit (default %d)", desc.GasLimit),
	)

	switch desc.Payment {
	case contracts.PaymentToken:
		cmd.Flags().Var(
			&p.payment,
			paymentFlag,
			"Token transfer sent with the call: <token>[:<nonce>]:<amount>",
		)
	case contracts.PaymentNative:
		cmd.Flags().Var(
			&p.value,
			valueFlag,
			"Amount of native coin sent with the call",
		)
	}

	if desc.Kind == contracts.KindDeploy {
		defaults := types.DefaultCodeMetadata
		cmd.Flags().StringVar(
			&p.code,
			codeFlag,
			contracts.DefaultArtifactPath,
			"Path to the contract code: *.mxsc.json build output or *.wasm",
		)
		cmd.Flags().BoolVar(&p.upgradeable, upgradeableFlag, defaults.Upgradeable(), "Deploy the contract as upgradeable")
		cmd.Flags().BoolVar(&p.readable, readableFlag, defaults.Readable(), "Allow other contracts to read the contract storage")
		cmd.Flags().BoolVar(&p.payable, payableFlag, defaults.Payable(), "Allow the contract to receive payments")
		cmd.Flags().BoolVar(&p.payableBySc, payableByScFlag, defaults.PayableBySc(), "Allow the contract to receive payments from contracts")
	}
}

func usage(desc contracts.Descriptor) string {
	parts := []string{desc.Endpoint.String()}
	for _, slot := range desc.Args {
		parts = append(parts, "["+slot.String()+"]")
	}
	return strings.Join(parts, " ")
}

func short(desc contracts.Descriptor) string {
	switch desc.Kind {
	case contracts.KindDeploy:
		return "Deploy the contract and remember its address"
	case contracts.KindReadOnly:
		return fmt.Sprintf("Query %s, returns %s", desc.Endpoint, desc.Result)
	}
	return fmt.Sprintf("Call %s, returns %s", desc.Endpoint, desc.Result)
}

func (p *params) source(cmd *cobra.Command, args []string) service.ArgSource {
	if p.placeholder {
		return service.PlaceholderSource{}
	}

	src := &PositionalSource{Raw: args, Payment: p.payment.Payment}
	if cmd.Flags().Changed(valueFlag) {
		value := p.value
		src.Value = &value
	}
	return src
}

func (p *params) options(cfg *common.Config, desc contracts.Descriptor) []service.Option {
	opts := []service.Option{
		service.WithGasPrice(cfg.GasPrice),
		service.WithGasLimit(p.gasLimit),
	}
	if desc.Kind == contracts.KindDeploy {
		path := p.code
		opts = append(opts,
			service.WithCodeLoader(func() (*contracts.Artifact, error) {
				return contracts.LoadArtifact(path)
			}),
			service.WithCodeMetadata(types.NewCodeMetadata(p.upgradeable, p.readable, p.payable, p.payableBySc)),
		)
	}
	return opts
}

func runCommand(cmd *cobra.Command, args []string, cfg *common.Config, desc contracts.Descriptor, p *params) error {
	w, err := common.ResolveWallet(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go concurrent.OnSignal(ctx, cancel, os.Interrupt, syscall.SIGTERM)

	storage := state.NewFileStorage(cfg.StateFile)
	logger.Debug().Stringer(logging.FieldStateFile, storage).Send()

	return state.Run(storage, func(registry *state.Registry) error {
		srv := service.NewService(common.GetGatewayClient(), w, registry, p.source(cmd, args), p.options(cfg, desc)...)

		outcome, err := srv.Dispatch(ctx, desc.Endpoint.String())
		if err != nil {
			return err
		}
		return outcome.Render(cmd.OutOrStdout(), config.Quiet)
	})
}

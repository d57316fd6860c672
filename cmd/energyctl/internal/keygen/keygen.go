package keygen

import (
	"github.com/NilFoundation/energyctl/cli/service"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("keygenCommand")

func GetCommand() *cobra.Command {
	keygen := service.NewService(nil, nil, nil, nil)

	keygenCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new key or generate a key from the provided hex private key",
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := common.PatchConfig(map[string]any{
				common.PrivateKeyField: keygen.GetPrivateKey(),
			}, false); err != nil {
				logger.Error().Err(err).Msg("failed to update the private key in the config file")
			}
			return nil
		},
		SilenceUsage: true,
	}

	keygenCmd.AddCommand(
		NewCommand(keygen),
		FromHexCommand(keygen),
		FromPEMCommand(keygen),
	)
	return keygenCmd
}

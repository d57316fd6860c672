package common

import (
	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/client/gateway"
	"github.com/NilFoundation/energyctl/common/check"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/common/version"
	"github.com/NilFoundation/energyctl/internal/wallet"
	"github.com/rs/zerolog"
)

const AppName = "energyctl"

var gatewayClient client.Client

func InitGatewayClient(cfg *Config, logger zerolog.Logger) {
	endpoint := cfg.Gateway
	if endpoint == "" {
		endpoint = gateway.DevnetGateway
	}

	opts := []gateway.Option{
		gateway.WithHeaders(map[string]string{
			"User-Agent": version.UserAgent(AppName),
		}),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gateway.WithTimeout(cfg.Timeout))
	}
	gatewayClient = gateway.NewClient(endpoint, opts...)

	logger.Debug().Str(logging.FieldUrl, endpoint).Msg("Gateway client initialized")
}

// SetGatewayClient replaces the process gateway client. Used by tests.
func SetGatewayClient(c client.Client) {
	gatewayClient = c
}

func GetGatewayClient() client.Client {
	check.PanicIfNot(gatewayClient != nil)
	return gatewayClient
}

// ResolveWallet picks the signing identity: the configured secret key first,
// then the configured key file, and the well-known test wallet otherwise.
func ResolveWallet(cfg *Config, logger zerolog.Logger) (*wallet.Wallet, error) {
	if cfg.PrivateKey != nil {
		return cfg.PrivateKey, nil
	}
	if cfg.WalletPEM != "" {
		return wallet.LoadPEM(cfg.WalletPEM)
	}

	w := wallet.Alice()
	logger.Warn().
		Stringer(logging.FieldTxFrom, w.Address()).
		Msg("No wallet configured, using the test wallet")
	return w, nil
}

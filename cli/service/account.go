package service

import (
	"context"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/common/logging"
)

// GetAccount fetches the nonce and balance of the sender.
func (s *Service) GetAccount(ctx context.Context) (*client.Account, error) {
	account, err := s.client.GetAccount(ctx, s.wallet.Address())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch account")
		return nil, err
	}
	s.logger.Debug().
		Stringer(logging.FieldTxFrom, account.Address).
		Uint64(logging.FieldTxNonce, account.Nonce).
		Msgf("Balance: %s", account.Balance)
	return account, nil
}

// GetNetworkConfig returns the chain parameters used to build transactions.
func (s *Service) GetNetworkConfig(ctx context.Context) (*client.NetworkConfig, error) {
	cfg, err := s.client.GetNetworkConfig(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch network config")
		return nil, err
	}
	s.logger.Debug().Str(logging.FieldChainId, cfg.ChainID).Send()
	return cfg, nil
}

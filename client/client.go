package client

import (
	"context"

	"github.com/NilFoundation/energyctl/internal/types"
)

// Client defines the interface for a gateway client.
// Note: only the calls needed to deploy, call and query a contract are exposed.
type Client interface {
	GetNetworkConfig(ctx context.Context) (*NetworkConfig, error)
	GetAccount(ctx context.Context, address types.Address) (*Account, error)

	// SendTransaction broadcasts a signed transaction and returns its hash.
	SendTransaction(ctx context.Context, tx *Transaction) (string, error)
	GetTransactionStatus(ctx context.Context, hash string) (TxStatus, error)
	GetTransaction(ctx context.Context, hash string, withResults bool) (*TransactionOnNetwork, error)

	// Query executes a read-only call.
	Query(ctx context.Context, query *Query) (*QueryResponse, error)
}

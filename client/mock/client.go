package mock

import (
	"context"
	"sync"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/internal/types"
)

type MockClient struct {
	NetworkConfig *client.NetworkConfig
	Account       *client.Account
	Hash          string
	// StatusErrors fail the first status calls, one by one.
	StatusErrors  []error
	// Statuses are returned one by one after StatusErrors; the last one repeats.
	Statuses      []client.TxStatus
	Transaction   *client.TransactionOnNetwork
	QueryResponse *client.QueryResponse
	Err           error

	mu          sync.Mutex
	Sent        []*client.Transaction
	Queries     []*client.Query
	StatusCalls int
	Calls       int
}

var _ client.Client = (*MockClient)(nil)

func (m *MockClient) record() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
}

func (m *MockClient) GetNetworkConfig(context.Context) (*client.NetworkConfig, error) {
	m.record()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.NetworkConfig != nil {
		return m.NetworkConfig, nil
	}
	return &client.NetworkConfig{ChainID: "local", MinGasPrice: 1_000_000_000, MinGasLimit: 50_000, GasPerDataByte: 1500, MinTxVersion: 1}, nil
}

func (m *MockClient) GetAccount(_ context.Context, address types.Address) (*client.Account, error) {
	m.record()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Account != nil {
		return m.Account, nil
	}
	return &client.Account{Address: address}, nil
}

func (m *MockClient) SendTransaction(_ context.Context, tx *client.Transaction) (string, error) {
	m.record()
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, tx)
	m.mu.Unlock()
	if m.Hash != "" {
		return m.Hash, nil
	}
	return "0000", nil
}

func (m *MockClient) GetTransactionStatus(context.Context, string) (client.TxStatus, error) {
	m.record()
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusCalls++
	if m.StatusCalls <= len(m.StatusErrors) {
		return "", m.StatusErrors[m.StatusCalls-1]
	}
	if len(m.Statuses) == 0 {
		return client.StatusSuccess, nil
	}
	idx := min(m.StatusCalls-len(m.StatusErrors), len(m.Statuses)) - 1
	return m.Statuses[idx], nil
}

func (m *MockClient) GetTransaction(_ context.Context, hash string, _ bool) (*client.TransactionOnNetwork, error) {
	m.record()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Transaction != nil {
		return m.Transaction, nil
	}
	return &client.TransactionOnNetwork{Hash: hash, Status: client.StatusSuccess}, nil
}

func (m *MockClient) Query(_ context.Context, query *client.Query) (*client.QueryResponse, error) {
	m.record()
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	if m.QueryResponse != nil {
		return m.QueryResponse, nil
	}
	return &client.QueryResponse{ReturnCode: "ok"}, nil
}

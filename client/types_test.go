package client

import (
	"encoding/json"
	"testing"

	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = types.MustParseAddress("erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th")

func TestSigningBytes(t *testing.T) {
	t.Parallel()

	tx := &Transaction{
		Nonce:     7,
		Value:     "0",
		Receiver:  alice,
		Sender:    alice,
		GasPrice:  1_000_000_000,
		GasLimit:  50_000,
		Data:      []byte("pause"),
		ChainID:   "D",
		Version:   1,
		Signature: "ff",
	}
	data, err := tx.SigningBytes()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nonce": 7,
		"value": "0",
		"receiver": "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th",
		"sender": "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th",
		"gasPrice": 1000000000,
		"gasLimit": 50000,
		"data": "cGF1c2U=",
		"chainID": "D",
		"version": 1
	}`, string(data))
	assert.Equal(t, "ff", tx.Signature)

	tx.Data = nil
	data, err = tx.SigningBytes()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data")
}

func TestTransactionOnNetwork(t *testing.T) {
	t.Parallel()

	raw := `{
		"hash": "aa",
		"status": "success",
		"smartContractResults": [
			{"data": "ESDTTransfer@4d4558@01"},
			{"data": "@6f6b@4d4558@@03e8"}
		],
		"logs": {"events": [
			{"identifier": "SCDeploy", "topics": ["AAAAAAAAAAAFAG+8meWKgu88CCr80meSkmkwSck3EJA="]}
		]}
	}`
	var tx TransactionOnNetwork
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	data, ok, err := tx.ReturnData()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("MEX"), {}, {0x03, 0xe8}}, data)

	addr, ok := tx.DeployedAddress()
	require.True(t, ok)
	assert.Equal(t, "erd1qqqqqqqqqqqqqpgqd77fnev2sthnczp2lnfx0y5jdycynjfhzzgq6p3rax", addr.String())
	assert.True(t, tx.Status.IsSuccessful())
	assert.Empty(t, tx.ErrorMessage())
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	raw := `{
		"status": "fail",
		"logs": {"events": [
			{"identifier": "signalError", "topics": ["AA==", "Q29udHJhY3QgaXMgcGF1c2Vk"]}
		]}
	}`
	var tx TransactionOnNetwork
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, "Contract is paused", tx.ErrorMessage())
	assert.True(t, tx.Status.IsFinal())
	assert.False(t, tx.Status.IsSuccessful())

	_, ok, err := tx.ReturnData()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok = tx.DeployedAddress()
	assert.False(t, ok)
}

func TestReturnDataFromWriteLog(t *testing.T) {
	t.Parallel()

	tx := TransactionOnNetwork{
		Status: StatusSuccess,
		Logs: &Logs{Events: []Event{
			{Identifier: EventWriteLog, Data: []byte("@6f6b@0a")},
		}},
	}
	data, ok, err := tx.ReturnData()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][]byte{{0x0a}}, data)

	tx.Logs.Events[0].Data = []byte("@6f6b@zz")
	_, ok, err = tx.ReturnData()
	assert.True(t, ok)
	require.Error(t, err)
}

func TestTxStatus(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		status     TxStatus
		final      bool
		successful bool
	}{
		{StatusSuccess, true, true},
		{StatusExecuted, true, true},
		{StatusFail, true, false},
		{StatusInvalid, true, false},
		{StatusPending, false, false},
		{"received", false, false},
		{"", false, false},
	} {
		assert.Equal(t, tc.final, tc.status.IsFinal(), "%q", tc.status)
		assert.Equal(t, tc.successful, tc.status.IsSuccessful(), "%q", tc.status)
	}
}

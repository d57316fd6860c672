package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var alice = types.MustParseAddress("erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	c := NewClient(ts.URL+"/", WithRetries(3, time.Millisecond), WithTimeout(5*time.Second))
	t.Cleanup(func() {
		c.client.CloseIdleConnections()
		ts.Close()
	})
	return c
}

func reply(t *testing.T, w http.ResponseWriter, data string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	_, err := io.WriteString(w, `{"data":`+data+`,"error":"","code":"successful"}`)
	assert.NoError(t, err)
}

func TestGetNetworkConfig(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/network/config", r.URL.Path)
		reply(t, w, `{"config":{
			"erd_chain_id":"D",
			"erd_min_gas_price":1000000000,
			"erd_min_gas_limit":50000,
			"erd_gas_per_data_byte":1500,
			"erd_min_transaction_version":1
		}}`)
	})

	cfg, err := c.GetNetworkConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &client.NetworkConfig{
		ChainID:        "D",
		MinGasPrice:    1_000_000_000,
		MinGasLimit:    50_000,
		GasPerDataByte: 1500,
		MinTxVersion:   1,
	}, cfg)
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/"+alice.String(), r.URL.Path)
		reply(t, w, `{"account":{"address":"`+alice.String()+`","nonce":42,"balance":"1000000000000000000"}}`)
	})

	acc, err := c.GetAccount(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, alice, acc.Address)
	assert.Equal(t, uint64(42), acc.Nonce)
	assert.Equal(t, "1000000000000000000", acc.Balance.String())
}

func TestSendTransaction(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, alice.String(), body["sender"])
		assert.Equal(t, "cGF1c2U=", body["data"])
		assert.Equal(t, "abcd", body["signature"])
		reply(t, w, `{"txHash":"f00d"}`)
	})

	hash, err := c.SendTransaction(context.Background(), &client.Transaction{
		Nonce:     1,
		Value:     "0",
		Receiver:  alice,
		Sender:    alice,
		GasPrice:  1_000_000_000,
		GasLimit:  60_000_000,
		Data:      []byte("pause"),
		ChainID:   "D",
		Version:   1,
		Signature: "abcd",
	})
	require.NoError(t, err)
	assert.Equal(t, "f00d", hash)
}

func TestTransactionStatusAndResults(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transaction/f00d/status":
			reply(t, w, `{"status":"success"}`)
		case "/transaction/f00d":
			assert.Equal(t, "true", r.URL.Query().Get("withResults"))
			reply(t, w, `{"transaction":{"status":"success","smartContractResults":[{"data":"@6f6b@01"}]}}`)
		default:
			http.NotFound(w, r)
		}
	})

	status, err := c.GetTransactionStatus(context.Background(), "f00d")
	require.NoError(t, err)
	assert.Equal(t, client.StatusSuccess, status)

	tx, err := c.GetTransaction(context.Background(), "f00d", true)
	require.NoError(t, err)
	assert.Equal(t, "f00d", tx.Hash)
	data, ok, err := tx.ReturnData()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, [][]byte{{1}}, data)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vm-values/query", r.URL.Path)

		var q client.Query
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "getLockedTokenId", q.FuncName)
		assert.Equal(t, alice, q.ScAddress)
		assert.Empty(t, q.Args)
		reply(t, w, `{"data":{"returnData":["TE9DSy0xMjM0NTY="],"returnCode":"ok","returnMessage":""}}`)
	})

	res, err := c.Query(context.Background(), &client.Query{ScAddress: alice, FuncName: "getLockedTokenId", Args: []string{}})
	require.NoError(t, err)
	assert.True(t, res.IsOk())
	assert.Equal(t, [][]byte{[]byte("LOCK-123456")}, res.ReturnData)
}

func TestGatewayError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"data":null,"error":"transaction generation failed: invalid signature","code":"bad_request"}`)
	})

	_, err := c.SendTransaction(context.Background(), &client.Transaction{})
	require.ErrorIs(t, err, ErrGatewayError)
	require.ErrorContains(t, err, "invalid signature")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetTransactionStatus(context.Background(), "f00d")
	require.ErrorIs(t, err, ErrUnexpectedStatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryRecovers(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		reply(t, w, `{"status":"pending"}`)
	})

	status, err := c.GetTransactionStatus(context.Background(), "f00d")
	require.NoError(t, err)
	assert.Equal(t, client.StatusPending, status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRequestFailed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c := NewClient(ts.URL, WithRetries(1, time.Millisecond))
	_, err := c.GetNetworkConfig(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestContextCancelled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		reply(t, w, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetNetworkConfig(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "energyctl/0", r.Header.Get("User-Agent"))
		reply(t, w, `{"status":"success"}`)
	}))
	c := NewClient(ts.URL, WithHeaders(map[string]string{"User-Agent": "energyctl/0"}))
	t.Cleanup(func() {
		c.client.CloseIdleConnections()
		ts.Close()
	})

	status, err := c.GetTransactionStatus(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, client.StatusSuccess, status)
}

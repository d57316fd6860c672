package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/common"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/rs/zerolog"
)

var (
	ErrFailedToMarshalRequest    = errors.New("failed to marshal request")
	ErrRequestFailed             = errors.New("failed to send request")
	ErrUnexpectedStatusCode      = errors.New("unexpected status code")
	ErrFailedToReadResponse      = errors.New("failed to read response")
	ErrFailedToUnmarshalResponse = errors.New("failed to unmarshal response")
	ErrGatewayError              = errors.New("gateway error")
)

const (
	DevnetGateway  = "https://devnet-gateway.multiversx.com"
	TestnetGateway = "https://testnet-gateway.multiversx.com"
	MainnetGateway = "https://gateway.multiversx.com"

	DefaultTimeout = 30 * time.Second

	pathNetworkConfig = "/network/config"
	pathAddress       = "/address/"
	pathSendTx        = "/transaction/send"
	pathTransaction   = "/transaction/"
	pathQuery         = "/vm-values/query"

	codeSuccessful = "successful"
)

type response struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

type Client struct {
	endpoint string
	client   http.Client
	headers  map[string]string
	retrier  common.RetryRunner
	logger   zerolog.Logger
}

var _ client.Client = (*Client)(nil)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithHeaders adds headers to every request, e.g. User-Agent.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithRetries sets how many times idempotent reads are attempted on transient failures.
func WithRetries(attempts uint32, delay time.Duration) Option {
	return func(c *Client) {
		c.retrier = common.NewRetryRunner(common.RetryConfig{
			ShouldRetry: common.RetryOnlyMarked(attempts),
			NextDelay:   common.ExponentialDelay(delay, 8*delay),
		}, c.logger)
	}
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   http.Client{Timeout: DefaultTimeout},
		logger:   logging.NewLogger("gateway"),
	}
	WithRetries(3, 500*time.Millisecond)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) call(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToMarshalRequest, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrRequestFailed, common.ErrRetryable, err)
	}
	defer resp.Body.Close()

	c.logger.Trace().
		Str(logging.FieldGatewayMethod, method).
		Str(logging.FieldGatewayPath, path).
		Int(logging.FieldReturnCode, resp.StatusCode).
		Dur(logging.FieldDuration, time.Since(start)).
		Msg("Gateway call")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToReadResponse, err)
	}

	var gwResponse response
	if err := json.Unmarshal(respBody, &gwResponse); err != nil {
		if resp.StatusCode != http.StatusOK {
			return statusError(resp.StatusCode)
		}
		return fmt.Errorf("%w: %w", ErrFailedToUnmarshalResponse, err)
	}
	if gwResponse.Error != "" || (gwResponse.Code != "" && gwResponse.Code != codeSuccessful) {
		return fmt.Errorf("%w: %s (%s)", ErrGatewayError, gwResponse.Error, gwResponse.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}

	if err := json.Unmarshal(gwResponse.Data, result); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToUnmarshalResponse, err)
	}
	return nil
}

func statusError(code int) error {
	if code >= http.StatusInternalServerError || code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w: %d", ErrUnexpectedStatusCode, common.ErrRetryable, code)
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, code)
}

// get performs an idempotent read, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.retrier.Do(ctx, func(ctx context.Context) error {
		return c.call(ctx, http.MethodGet, path, nil, result)
	})
}

func (c *Client) GetNetworkConfig(ctx context.Context) (*client.NetworkConfig, error) {
	var res struct {
		Config client.NetworkConfig `json:"config"`
	}
	if err := c.get(ctx, pathNetworkConfig, &res); err != nil {
		return nil, err
	}
	return &res.Config, nil
}

func (c *Client) GetAccount(ctx context.Context, address types.Address) (*client.Account, error) {
	var res struct {
		Account client.Account `json:"account"`
	}
	if err := c.get(ctx, pathAddress+address.String(), &res); err != nil {
		return nil, err
	}
	return &res.Account, nil
}

func (c *Client) SendTransaction(ctx context.Context, tx *client.Transaction) (string, error) {
	var res struct {
		TxHash string `json:"txHash"`
	}
	if err := c.call(ctx, http.MethodPost, pathSendTx, tx, &res); err != nil {
		return "", err
	}
	if res.TxHash == "" {
		return "", fmt.Errorf("%w: empty transaction hash", ErrGatewayError)
	}
	return res.TxHash, nil
}

func (c *Client) GetTransactionStatus(ctx context.Context, hash string) (client.TxStatus, error) {
	var res struct {
		Status client.TxStatus `json:"status"`
	}
	if err := c.get(ctx, pathTransaction+url.PathEscape(hash)+"/status", &res); err != nil {
		return "", err
	}
	return res.Status, nil
}

func (c *Client) GetTransaction(ctx context.Context, hash string, withResults bool) (*client.TransactionOnNetwork, error) {
	path := pathTransaction + url.PathEscape(hash)
	if withResults {
		path += "?withResults=true"
	}
	var res struct {
		Transaction client.TransactionOnNetwork `json:"transaction"`
	}
	if err := c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	if res.Transaction.Hash == "" {
		res.Transaction.Hash = hash
	}
	return &res.Transaction, nil
}

func (c *Client) Query(ctx context.Context, query *client.Query) (*client.QueryResponse, error) {
	var res struct {
		Data client.QueryResponse `json:"data"`
	}
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		return c.call(ctx, http.MethodPost, pathQuery, query, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res.Data, nil
}

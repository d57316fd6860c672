package client

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NilFoundation/energyctl/internal/types"
)

const (
	EventSCDeploy         = "SCDeploy"
	EventSignalError      = "signalError"
	EventInternalVMErrors = "internalVMErrors"
	EventWriteLog         = "writeLog"

	okReturnCode = "6f6b"
)

type NetworkConfig struct {
	ChainID        string `json:"erd_chain_id"`
	MinGasPrice    uint64 `json:"erd_min_gas_price"`
	MinGasLimit    uint64 `json:"erd_min_gas_limit"`
	GasPerDataByte uint64 `json:"erd_gas_per_data_byte"`
	MinTxVersion   uint32 `json:"erd_min_transaction_version"`
}

type Account struct {
	Address types.Address `json:"address"`
	Nonce   uint64        `json:"nonce"`
	Balance types.Value   `json:"balance"`
}

// Transaction is the signed transaction as the gateway accepts it.
type Transaction struct {
	Nonce     uint64        `json:"nonce"`
	Value     string        `json:"value"`
	Receiver  types.Address `json:"receiver"`
	Sender    types.Address `json:"sender"`
	GasPrice  uint64        `json:"gasPrice"`
	GasLimit  uint64        `json:"gasLimit"`
	Data      []byte        `json:"data,omitempty"`
	ChainID   string        `json:"chainID"`
	Version   uint32        `json:"version"`
	Signature string        `json:"signature,omitempty"`
}

// SigningBytes returns the canonical serialization covered by the signature.
func (tx *Transaction) SigningBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signature = ""
	return json.Marshal(&unsigned)
}

type TxStatus string

const (
	StatusPending  TxStatus = "pending"
	StatusSuccess  TxStatus = "success"
	StatusExecuted TxStatus = "executed"
	StatusFail     TxStatus = "fail"
	StatusInvalid  TxStatus = "invalid"
)

// IsFinal reports whether the transaction reached one of the terminal statuses.
// Unknown statuses are treated as still in progress.
func (s TxStatus) IsFinal() bool {
	switch s {
	case StatusSuccess, StatusExecuted, StatusFail, StatusInvalid:
		return true
	}
	return false
}

func (s TxStatus) IsSuccessful() bool {
	return s == StatusSuccess || s == StatusExecuted
}

type SmartContractResult struct {
	Hash           string `json:"hash"`
	Nonce          uint64 `json:"nonce"`
	Value          string `json:"value"`
	Receiver       string `json:"receiver"`
	Sender         string `json:"sender"`
	Data           string `json:"data"`
	PrevTxHash     string `json:"prevTxHash"`
	OriginalTxHash string `json:"originalTxHash"`
	ReturnMessage  string `json:"returnMessage"`
}

type Event struct {
	Address    string   `json:"address"`
	Identifier string   `json:"identifier"`
	Topics     [][]byte `json:"topics"`
	Data       []byte   `json:"data"`
}

type Logs struct {
	Address string  `json:"address"`
	Events  []Event `json:"events"`
}

type TransactionOnNetwork struct {
	Hash                 string                `json:"hash"`
	Status               TxStatus              `json:"status"`
	Nonce                uint64                `json:"nonce"`
	Sender               string                `json:"sender"`
	Receiver             string                `json:"receiver"`
	SmartContractResults []SmartContractResult `json:"smartContractResults"`
	Logs                 *Logs                 `json:"logs"`
}

// Events returns the events of the transaction and of its contract results, in order.
func (tx *TransactionOnNetwork) Events() []Event {
	if tx.Logs == nil {
		return nil
	}
	return tx.Logs.Events
}

func (tx *TransactionOnNetwork) FindEvent(identifier string) (Event, bool) {
	for _, e := range tx.Events() {
		if e.Identifier == identifier {
			return e, true
		}
	}
	return Event{}, false
}

// ReturnData extracts the values returned by the contract from the "@6f6b@..." result,
// looking at contract results first and at the writeLog event second.
// ok is false when no successful result was produced.
func (tx *TransactionOnNetwork) ReturnData() (data [][]byte, ok bool, err error) {
	for _, scr := range tx.SmartContractResults {
		if data, ok, err := parseReturnData(scr.Data); ok {
			return data, ok, err
		}
	}
	if e, found := tx.FindEvent(EventWriteLog); found {
		return parseReturnData(string(e.Data))
	}
	return nil, false, nil
}

func parseReturnData(raw string) ([][]byte, bool, error) {
	parts := strings.Split(raw, "@")
	if len(parts) < 2 || parts[0] != "" || parts[1] != okReturnCode {
		return nil, false, nil
	}
	data := make([][]byte, 0, len(parts)-2)
	for _, p := range parts[2:] {
		b, err := hex.DecodeString(p)
		if err != nil {
			return nil, true, fmt.Errorf("malformed return data %q: %w", raw, err)
		}
		data = append(data, b)
	}
	return data, true, nil
}

// ErrorMessage returns the failure reason reported by the contract or the VM, if any.
func (tx *TransactionOnNetwork) ErrorMessage() string {
	if e, ok := tx.FindEvent(EventSignalError); ok {
		if len(e.Topics) > 1 {
			return string(e.Topics[1])
		}
		return string(bytes.TrimPrefix(e.Data, []byte("@")))
	}
	if e, ok := tx.FindEvent(EventInternalVMErrors); ok {
		return string(e.Data)
	}
	for _, scr := range tx.SmartContractResults {
		if scr.ReturnMessage != "" {
			return scr.ReturnMessage
		}
	}
	return ""
}

// DeployedAddress returns the address announced by the SCDeploy event.
func (tx *TransactionOnNetwork) DeployedAddress() (types.Address, bool) {
	e, ok := tx.FindEvent(EventSCDeploy)
	if !ok || len(e.Topics) == 0 || len(e.Topics[0]) != types.AddrSize {
		return types.EmptyAddress, false
	}
	return types.BytesToAddress(e.Topics[0]), true
}

type Query struct {
	ScAddress types.Address  `json:"scAddress"`
	FuncName  string         `json:"funcName"`
	Caller    *types.Address `json:"caller,omitempty"`
	Value     string         `json:"value,omitempty"`
	Args      []string       `json:"args"`
}

type QueryResponse struct {
	ReturnData    [][]byte `json:"returnData"`
	ReturnCode    string   `json:"returnCode"`
	ReturnMessage string   `json:"returnMessage"`
}

func (r *QueryResponse) IsOk() bool {
	return r.ReturnCode == "ok"
}

// Package txbuilder turns an operation descriptor plus concrete arguments into a request
// ready to be signed and broadcast, or sent as a query.
package txbuilder

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NilFoundation/energyctl/internal/abi"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/types"
)

const (
	esdtTransferFunc    = "ESDTTransfer"
	esdtNFTTransferFunc = "ESDTNFTTransfer"
	dataSeparator       = "@"
)

var (
	ErrArgumentMismatch = errors.New("argument count mismatch")
	ErrMissingPayment   = errors.New("payment required")
	ErrUnexpectedCode   = errors.New("contract code is only accepted by deploy")
)

// ArgumentError reports a value that does not fit its argument slot.
type ArgumentError struct {
	Index int
	Slot  contracts.ArgSlot
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d (%s): %v", e.Index, e.Slot, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Request is one fully parameterized operation.
type Request struct {
	Descriptor contracts.Descriptor
	Sender     types.Address
	// Receiver is the contract, or types.ZeroAddress for deploy.
	Receiver types.Address
	Function string
	// Args are the top-encoded arguments, multi-values already expanded.
	Args     [][]byte
	Payment  *types.Payment
	Value    types.Value
	Code     []byte
	Metadata types.CodeMetadata
	GasLimit uint64
}

type Option func(*Request)

// WithCode attaches the bytecode and its metadata to a deploy request.
func WithCode(code []byte, metadata types.CodeMetadata) Option {
	return func(r *Request) {
		r.Code = code
		r.Metadata = metadata
	}
}

// WithValue attaches a native-coin value.
func WithValue(value types.Value) Option {
	return func(r *Request) {
		r.Value = value
	}
}

func WithGasLimit(gasLimit uint64) Option {
	return func(r *Request) {
		if gasLimit != 0 {
			r.GasLimit = gasLimit
		}
	}
}

// Build assembles a request. Argument values are matched to the descriptor slots in order:
// optional slots may be left out, a trailing variadic slot takes all remaining values.
func Build(
	desc contracts.Descriptor,
	sender, receiver types.Address,
	args []abi.Value,
	payment *types.Payment,
	opts ...Option,
) (*Request, error) {
	minArgs, maxArgs := desc.ArgBounds()
	if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
		return nil, fmt.Errorf("%w: %s expects %s arguments, got %d",
			ErrArgumentMismatch, desc.Endpoint, boundsString(minArgs, maxArgs), len(args))
	}

	r := &Request{
		Descriptor: desc,
		Sender:     sender,
		Receiver:   receiver,
		Function:   desc.Function(),
		GasLimit:   desc.GasLimit,
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, v := range args {
		slot := desc.Args[min(i, len(desc.Args)-1)]
		if err := abi.Check(slot.Type, v); err != nil {
			return nil, &ArgumentError{Index: i, Slot: slot, Err: err}
		}
		encoded, err := abi.EncodeArgs(v)
		if err != nil {
			return nil, &ArgumentError{Index: i, Slot: slot, Err: err}
		}
		r.Args = append(r.Args, encoded...)
	}

	if err := r.attachPayment(payment); err != nil {
		return nil, err
	}

	if desc.Kind == contracts.KindDeploy {
		if !receiver.Equal(types.ZeroAddress) {
			return nil, fmt.Errorf("deploy must target the new account marker, got %s", receiver)
		}
		if len(r.Code) == 0 {
			return nil, errors.New("deploy requires contract code")
		}
	} else if len(r.Code) != 0 {
		return nil, ErrUnexpectedCode
	}
	return r, nil
}

func (r *Request) attachPayment(payment *types.Payment) error {
	desc := r.Descriptor
	if payment == nil {
		if desc.Payment == contracts.PaymentToken {
			return fmt.Errorf("%w: %s accepts exactly one token transfer", ErrMissingPayment, desc.Endpoint)
		}
		return nil
	}
	if desc.Kind != contracts.KindMutating {
		return fmt.Errorf("%w: %s is %s and takes no payment", types.ErrInvalidPayment, desc.Endpoint, desc.Kind)
	}

	switch desc.Payment {
	case contracts.PaymentToken:
		if payment.IsNative() {
			return fmt.Errorf("%w: %s accepts a token transfer, got native %s",
				types.ErrInvalidPayment, desc.Endpoint, payment.Amount)
		}
		r.Payment = payment
	case contracts.PaymentNative:
		if !payment.IsNative() {
			return fmt.Errorf("%w: %s accepts native coin only, got %s",
				types.ErrInvalidPayment, desc.Endpoint, payment)
		}
		r.Value = payment.Amount
	default:
		return fmt.Errorf("%w: %s takes no payment", types.ErrInvalidPayment, desc.Endpoint)
	}
	return nil
}

func boundsString(minArgs, maxArgs int) string {
	switch {
	case maxArgs < 0:
		return fmt.Sprintf("at least %d", minArgs)
	case minArgs == maxArgs:
		return strconv.Itoa(minArgs)
	}
	return fmt.Sprintf("%d to %d", minArgs, maxArgs)
}

// IsQuery reports whether the request is a read-only call.
func (r *Request) IsQuery() bool {
	return r.Descriptor.Kind == contracts.KindReadOnly
}

// TxReceiver is the receiver of the transaction on the wire.
// Instance transfers are sent to the sender itself, which forwards them to the contract.
func (r *Request) TxReceiver() types.Address {
	if r.Payment != nil && r.Payment.IsNFT() {
		return r.Sender
	}
	return r.Receiver
}

// NativeValue is the amount of native coin moved by the transaction.
func (r *Request) NativeValue() types.Value {
	if r.Value.Int == nil {
		return types.NewValueFromUint64(0)
	}
	return r.Value
}

// HexArgs returns the arguments in hex, as queries expect them.
func (r *Request) HexArgs() []string {
	res := make([]string, len(r.Args))
	for i, arg := range r.Args {
		res[i] = hex.EncodeToString(arg)
	}
	return res
}

// Data builds the transaction data field.
func (r *Request) Data() []byte {
	var parts []string
	switch {
	case r.Descriptor.Kind == contracts.KindDeploy:
		parts = []string{
			hex.EncodeToString(r.Code),
			hex.EncodeToString(types.VMTypeWasm[:]),
			hex.EncodeToString(r.Metadata.Bytes()),
		}
	case r.Payment == nil:
		parts = []string{r.Function}
	case r.Payment.IsNFT():
		parts = []string{
			esdtNFTTransferFunc,
			hex.EncodeToString([]byte(r.Payment.TokenId)),
			hex.EncodeToString(minimalUint(r.Payment.Nonce)),
			hex.EncodeToString(r.Payment.Amount.Bytes()),
			r.Receiver.Hex(),
			hex.EncodeToString([]byte(r.Function)),
		}
	default:
		parts = []string{
			esdtTransferFunc,
			hex.EncodeToString([]byte(r.Payment.TokenId)),
			hex.EncodeToString(r.Payment.Amount.Bytes()),
			hex.EncodeToString([]byte(r.Function)),
		}
	}
	parts = append(parts, r.HexArgs()...)
	return []byte(strings.Join(parts, dataSeparator))
}

func minimalUint(v uint64) []byte {
	b, err := abi.TopEncode(abi.U64(v))
	if err != nil {
		panic(err)
	}
	return b
}

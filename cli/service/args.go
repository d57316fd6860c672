package service

import (
	"github.com/NilFoundation/energyctl/internal/abi"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/types"
)

// ArgSource supplies the concrete arguments and payment of a command.
type ArgSource interface {
	Args(desc contracts.Descriptor) ([]abi.Value, *types.Payment, error)
}

// ArgSourceFunc adapts a function to ArgSource.
type ArgSourceFunc func(desc contracts.Descriptor) ([]abi.Value, *types.Payment, error)

func (f ArgSourceFunc) Args(desc contracts.Descriptor) ([]abi.Value, *types.Payment, error) {
	return f(desc)
}

// PlaceholderTokenId is the token sent with zero amount by PlaceholderSource.
const PlaceholderTokenId = "TOKEN-000000"

// PlaceholderSource fills every slot with the zero value of its type.
// Optional slots are present and variadic slots hold a single value.
// Token endpoints get a zero transfer of PlaceholderTokenId, native ones zero coin.
type PlaceholderSource struct{}

var _ ArgSource = PlaceholderSource{}

func (PlaceholderSource) Args(desc contracts.Descriptor) ([]abi.Value, *types.Payment, error) {
	args := make([]abi.Value, 0, len(desc.Args))
	for _, slot := range desc.Args {
		args = append(args, abi.Zero(slot.Type))
	}

	var payment *types.Payment
	switch desc.Payment {
	case contracts.PaymentToken:
		payment = types.NewPayment(PlaceholderTokenId, 0, types.NewValueFromUint64(0))
	case contracts.PaymentNative:
		payment = types.NewPayment(types.NativeTokenId, 0, types.NewValueFromUint64(0))
	}
	return args, payment, nil
}

package endpoint

import (
	"fmt"

	"github.com/NilFoundation/energyctl/cli/service"
	"github.com/NilFoundation/energyctl/internal/abi"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/txbuilder"
	"github.com/NilFoundation/energyctl/internal/types"
)

// PositionalSource parses command-line positional arguments against the descriptor slots.
// A trailing variadic slot takes every remaining argument.
type PositionalSource struct {
	Raw     []string
	Payment *types.Payment
	// Value is a native coin amount; it is sent as a native payment when Payment is not set.
	Value *types.Value
}

var _ service.ArgSource = (*PositionalSource)(nil)

func (s *PositionalSource) Args(desc contracts.Descriptor) ([]abi.Value, *types.Payment, error) {
	values := make([]abi.Value, 0, len(s.Raw))
	for i, raw := range s.Raw {
		if len(desc.Args) == 0 {
			return nil, nil, fmt.Errorf("%w: %s takes no arguments, got %d",
				txbuilder.ErrArgumentMismatch, desc.Endpoint, len(s.Raw))
		}
		slot := desc.Args[min(i, len(desc.Args)-1)]
		if i >= len(desc.Args) && slot.Multi != contracts.Variadic {
			return nil, nil, fmt.Errorf("%w: %s takes at most %d arguments, got %d",
				txbuilder.ErrArgumentMismatch, desc.Endpoint, len(desc.Args), len(s.Raw))
		}

		v, err := abi.Parse(slot.Type, raw)
		if err != nil {
			return nil, nil, &txbuilder.ArgumentError{Index: i, Slot: slot, Err: err}
		}
		values = append(values, v)
	}

	payment := s.Payment
	if payment == nil && s.Value != nil {
		payment = types.NewPayment(types.NativeTokenId, 0, *s.Value)
	}
	return values, payment, nil
}

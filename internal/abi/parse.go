package abi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	listSeparator  = ","
	fieldSeparator = ":"
)

// Parse reads a command-line representation of a value of type t.
//
// Scalars use their natural text form (decimal or 0x-hex numbers, bech32 addresses,
// true/false). Struct fields and tuple members are separated by ':', list items by ','.
// A struct with a single field is written as that field.
func Parse(t Type, s string) (Value, error) {
	v, err := parse(t, s)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse %q as %s: %w", ErrEncoding, s, t, err)
	}
	return v, nil
}

func parseUint(s string, bitSize int) (uint64, error) {
	digits, base := types.NumberBase(s)
	return strconv.ParseUint(digits, base, bitSize)
}

func parse(t Type, s string) (Value, error) {
	switch t.Kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		return Bool(b), err
	case KindU32:
		v, err := parseUint(s, 32)
		return U32(v), err
	case KindU64:
		v, err := parseUint(s, 64)
		return U64(v), err
	case KindBigUint:
		var v types.Value
		if err := v.Set(s); err != nil {
			return nil, err
		}
		return BigUint(v), nil
	case KindBigInt:
		sign, abs := "", s
		if rest, ok := strings.CutPrefix(s, "-"); ok {
			sign, abs = "-", rest
		}
		digits, base := types.NumberBase(abs)
		v, ok := new(big.Int).SetString(sign+digits, base)
		if !ok {
			return nil, fmt.Errorf("invalid integer")
		}
		return BigInt{v}, nil
	case KindAddress:
		a, err := types.ParseAddress(s)
		return Address(a), err
	case KindTokenIdentifier:
		return TokenIdentifier(s), nil
	case KindBuffer:
		if strings.HasPrefix(s, "0x") {
			b, err := hexutil.Decode(s)
			return Buffer(b), err
		}
		return Buffer(s), nil
	case KindStruct:
		if len(t.Fields) == 1 {
			f, err := parse(t.Fields[0], s)
			if err != nil {
				return nil, err
			}
			return Struct{Type: t, Fields: []Value{f}}, nil
		}
		parts := strings.Split(s, fieldSeparator)
		if len(parts) != len(t.Fields) {
			return nil, fmt.Errorf("expected %d fields (%s), got %d", len(t.Fields), strings.Join(t.FieldNames, fieldSeparator), len(parts))
		}
		fields := make([]Value, len(parts))
		for i, p := range parts {
			f, err := parse(t.Fields[i], p)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", t.FieldNames[i], err)
			}
			fields[i] = f
		}
		return Struct{Type: t, Fields: fields}, nil
	case KindList:
		list := List{Elem: t.Elem()}
		if s == "" {
			return list, nil
		}
		for _, p := range strings.Split(s, listSeparator) {
			item, err := parse(t.Elem(), p)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	case KindTuple:
		parts := strings.Split(s, fieldSeparator)
		if len(parts) != len(t.Fields) {
			return nil, fmt.Errorf("expected %d members, got %d", len(t.Fields), len(parts))
		}
		members := make(Tuple, len(parts))
		for i, p := range parts {
			m, err := parse(t.Fields[i], p)
			if err != nil {
				return nil, fmt.Errorf("member %d: %w", i, err)
			}
			members[i] = m
		}
		return members, nil
	}
	return nil, fmt.Errorf("unsupported type")
}

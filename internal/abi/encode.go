package abi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/NilFoundation/energyctl/internal/types"
)

var (
	ErrEncoding = errors.New("encoding error")
	ErrDecoding = errors.New("decoding error")
)

// Check verifies that v has the shape of t.
func Check(t Type, v Value) error {
	if v == nil {
		return fmt.Errorf("%w: missing value of type %s", ErrEncoding, t)
	}
	if v.Kind() != t.Kind {
		return fmt.Errorf("%w: expected %s, got %s", ErrEncoding, t, v.Kind())
	}
	switch val := v.(type) {
	case Struct:
		if len(val.Fields) != len(t.Fields) {
			return fmt.Errorf("%w: %s expects %d fields, got %d", ErrEncoding, t, len(t.Fields), len(val.Fields))
		}
		for i, f := range val.Fields {
			if err := Check(t.Fields[i], f); err != nil {
				return fmt.Errorf("%s.%s: %w", t.Name, t.FieldNames[i], err)
			}
		}
	case List:
		for i, item := range val.Items {
			if err := Check(t.Elem(), item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	case Tuple:
		if len(val) != len(t.Fields) {
			return fmt.Errorf("%w: %s expects %d members, got %d", ErrEncoding, t, len(t.Fields), len(val))
		}
		for i, m := range val {
			if err := Check(t.Fields[i], m); err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
		}
	}
	return nil
}

// EncodeArgs top-encodes a standalone argument. Tuples produce one argument per member,
// every other value produces exactly one.
func EncodeArgs(v Value) ([][]byte, error) {
	if tuple, ok := v.(Tuple); ok {
		args := make([][]byte, 0, len(tuple))
		for _, m := range tuple {
			arg, err := TopEncode(m)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return args, nil
	}
	arg, err := TopEncode(v)
	if err != nil {
		return nil, err
	}
	return [][]byte{arg}, nil
}

// TopEncode encodes a value standing on its own: numbers are minimal big-endian
// (zero is empty), buffers carry no length prefix.
func TopEncode(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Bool:
		if val {
			return []byte{1}, nil
		}
		return []byte{}, nil
	case U32:
		return minimalUnsigned(uint64(val)), nil
	case U64:
		return minimalUnsigned(uint64(val)), nil
	case BigUint:
		return types.Value(val).Bytes(), nil
	case BigInt:
		return signedBytes(val.value()), nil
	case Address:
		return types.Address(val).Bytes(), nil
	case TokenIdentifier:
		return []byte(val), nil
	case Buffer:
		return append([]byte{}, val...), nil
	case Struct:
		var out []byte
		for _, f := range val.Fields {
			enc, err := NestedEncode(f)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	case List:
		var out []byte
		for _, item := range val.Items {
			enc, err := NestedEncode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	case Tuple:
		return nil, fmt.Errorf("%w: multi-value cannot be encoded as a single argument", ErrEncoding)
	}
	return nil, fmt.Errorf("%w: unsupported value %T", ErrEncoding, v)
}

// NestedEncode encodes a value placed inside a struct or a list: fixed-width numbers,
// length-prefixed buffers and big integers.
func NestedEncode(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Bool:
		if val {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case U32:
		return binary.BigEndian.AppendUint32(nil, uint32(val)), nil
	case U64:
		return binary.BigEndian.AppendUint64(nil, uint64(val)), nil
	case BigUint, BigInt, TokenIdentifier, Buffer:
		top, err := TopEncode(val)
		if err != nil {
			return nil, err
		}
		return withLength(top), nil
	case Address:
		return types.Address(val).Bytes(), nil
	case Struct:
		return TopEncode(val)
	case List:
		items, err := TopEncode(val)
		if err != nil {
			return nil, err
		}
		out := binary.BigEndian.AppendUint32(nil, uint32(len(val.Items)))
		return append(out, items...), nil
	case Tuple:
		return nil, fmt.Errorf("%w: multi-value cannot be nested", ErrEncoding)
	}
	return nil, fmt.Errorf("%w: unsupported value %T", ErrEncoding, v)
}

func withLength(data []byte) []byte {
	out := binary.BigEndian.AppendUint32(make([]byte, 0, 4+len(data)), uint32(len(data)))
	return append(out, data...)
}

func minimalUnsigned(v uint64) []byte {
	if v == 0 {
		return []byte{}
	}
	buf := binary.BigEndian.AppendUint64(nil, v)
	i := 0
	for buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// signedBytes returns the shortest two's complement big-endian form; zero is empty.
func signedBytes(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return []byte{}
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// smallest n with -2^(8n-1) <= v
	n := (new(big.Int).Not(v).BitLen())/8 + 1
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	twos := new(big.Int).Add(mod, v).Bytes()
	out := make([]byte, n)
	copy(out[n-len(twos):], twos)
	return out
}

func signedFromBytes(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return v
}

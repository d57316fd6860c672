package abi

import (
	"encoding/binary"
	"fmt"

	"github.com/NilFoundation/energyctl/internal/types"
)

// DecodeTop decodes one standalone result of type t.
func DecodeTop(t Type, data []byte) (Value, error) {
	switch t.Kind {
	case KindBool:
		switch {
		case len(data) == 0:
			return Bool(false), nil
		case len(data) == 1 && data[0] == 1:
			return Bool(true), nil
		}
		return nil, fmt.Errorf("%w: invalid bool %x", ErrDecoding, data)
	case KindU32, KindU64:
		limit := 8
		if t.Kind == KindU32 {
			limit = 4
		}
		if len(data) > limit {
			return nil, fmt.Errorf("%w: %s of %d bytes", ErrDecoding, t, len(data))
		}
		var v uint64
		for _, b := range data {
			v = v<<8 | uint64(b)
		}
		if t.Kind == KindU32 {
			return U32(v), nil
		}
		return U64(v), nil
	case KindBigUint:
		v, err := types.NewValueFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
		}
		return BigUint(v), nil
	case KindBigInt:
		return BigInt{signedFromBytes(data)}, nil
	case KindAddress:
		if len(data) != types.AddrSize {
			return nil, fmt.Errorf("%w: address of %d bytes", ErrDecoding, len(data))
		}
		return Address(types.BytesToAddress(data)), nil
	case KindTokenIdentifier:
		return TokenIdentifier(data), nil
	case KindBuffer:
		return Buffer(append([]byte{}, data...)), nil
	case KindStruct:
		r := &reader{data: data}
		v, err := r.decodeStruct(t)
		if err != nil {
			return nil, err
		}
		return v, r.expectEnd()
	case KindList:
		r := &reader{data: data}
		list := List{Elem: t.Elem()}
		for !r.done() {
			item, err := r.decode(t.Elem())
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: cannot decode %s as a single result", ErrDecoding, t)
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) done() bool {
	return r.pos >= len(r.data)
}

func (r *reader) expectEnd() error {
	if !r.done() {
		return fmt.Errorf("%w: %d trailing bytes", ErrDecoding, len(r.data)-r.pos)
	}
	return nil
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || len(r.data)-r.pos < n {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrDecoding)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) length() (int, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) decodeStruct(t Type) (Struct, error) {
	s := Struct{Type: t, Fields: make([]Value, len(t.Fields))}
	for i, f := range t.Fields {
		v, err := r.decode(f)
		if err != nil {
			return Struct{}, fmt.Errorf("%s.%s: %w", t.Name, t.FieldNames[i], err)
		}
		s.Fields[i] = v
	}
	return s, nil
}

func (r *reader) decode(t Type) (Value, error) {
	switch t.Kind {
	case KindBool:
		b, err := r.take(1)
		if err != nil {
			return nil, err
		}
		if b[0] > 1 {
			return nil, fmt.Errorf("%w: invalid bool %x", ErrDecoding, b[0])
		}
		return Bool(b[0] == 1), nil
	case KindU32:
		b, err := r.take(4)
		if err != nil {
			return nil, err
		}
		return U32(binary.BigEndian.Uint32(b)), nil
	case KindU64:
		b, err := r.take(8)
		if err != nil {
			return nil, err
		}
		return U64(binary.BigEndian.Uint64(b)), nil
	case KindAddress:
		b, err := r.take(types.AddrSize)
		if err != nil {
			return nil, err
		}
		return Address(types.BytesToAddress(b)), nil
	case KindBigUint, KindBigInt, KindTokenIdentifier, KindBuffer:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		b, err := r.take(n)
		if err != nil {
			return nil, err
		}
		return DecodeTop(t, b)
	case KindStruct:
		return r.decodeStruct(t)
	case KindList:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		list := List{Elem: t.Elem()}
		for range n {
			item, err := r.decode(t.Elem())
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: cannot decode nested %s", ErrDecoding, t)
}

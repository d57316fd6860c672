package abi

import (
	"math/big"

	"github.com/NilFoundation/energyctl/internal/types"
)

// Value is a typed argument or result.
type Value interface {
	Kind() Kind
}

type (
	Bool            bool
	U32             uint32
	U64             uint64
	BigUint         types.Value
	Address         types.Address
	TokenIdentifier string
	Buffer          []byte
)

// BigInt is a signed arbitrary-precision integer.
type BigInt struct{ *big.Int }

// Struct is a value of a struct type; Fields follow Type.Fields order.
type Struct struct {
	Type   Type
	Fields []Value
}

// List is a homogeneous sequence of nested values.
type List struct {
	Elem  Type
	Items []Value
}

// Tuple is a group of standalone arguments passed together as one multi-value item.
type Tuple []Value

func (Bool) Kind() Kind            { return KindBool }
func (U32) Kind() Kind             { return KindU32 }
func (U64) Kind() Kind             { return KindU64 }
func (BigUint) Kind() Kind         { return KindBigUint }
func (BigInt) Kind() Kind          { return KindBigInt }
func (Address) Kind() Kind         { return KindAddress }
func (TokenIdentifier) Kind() Kind { return KindTokenIdentifier }
func (Buffer) Kind() Kind          { return KindBuffer }
func (Struct) Kind() Kind          { return KindStruct }
func (List) Kind() Kind            { return KindList }
func (Tuple) Kind() Kind           { return KindTuple }

func NewBigUint(v types.Value) BigUint {
	return BigUint(v)
}

func NewBigUintFromUint64(v uint64) BigUint {
	return BigUint(types.NewValueFromUint64(v))
}

func NewBigInt(v int64) BigInt {
	return BigInt{big.NewInt(v)}
}

func (b BigInt) value() *big.Int {
	if b.Int == nil {
		return new(big.Int)
	}
	return b.Int
}

// Zero returns the zero value of t: empty lists, zero numbers, empty buffers, the zero address.
func Zero(t Type) Value {
	switch t.Kind {
	case KindBool:
		return Bool(false)
	case KindU32:
		return U32(0)
	case KindU64:
		return U64(0)
	case KindBigUint:
		return NewBigUintFromUint64(0)
	case KindBigInt:
		return NewBigInt(0)
	case KindAddress:
		return Address(types.EmptyAddress)
	case KindTokenIdentifier:
		return TokenIdentifier("")
	case KindBuffer:
		return Buffer(nil)
	case KindStruct:
		fields := make([]Value, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = Zero(f)
		}
		return Struct{Type: t, Fields: fields}
	case KindList:
		return List{Elem: t.Elem()}
	case KindTuple:
		members := make(Tuple, len(t.Fields))
		for i, f := range t.Fields {
			members[i] = Zero(f)
		}
		return members
	}
	panic("unknown kind " + t.Kind.String())
}

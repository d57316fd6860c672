package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Value is an unsigned token amount (BigUint on the contract side).
type Value struct{ *uint256.Int }

func NewValue(val *uint256.Int) Value {
	return Value{new(uint256.Int).Set(val)}
}

func NewValueFromUint64(val uint64) Value {
	return Value{uint256.NewInt(val)}
}

func NewValueFromBig(val *big.Int) (Value, bool) {
	res, overflow := uint256.FromBig(val)
	if overflow {
		return Value{}, true
	}
	return Value{res}, false
}

// NewValueFromBytes interprets input as a big-endian unsigned integer.
func NewValueFromBytes(input []byte) (Value, error) {
	if len(input) > 32 {
		return Value{}, fmt.Errorf("value of %d bytes overflows 256 bits", len(input))
	}
	return Value{new(uint256.Int).SetBytes(input)}, nil
}

func (v Value) safeInt() *uint256.Int {
	if v.Int == nil {
		return new(uint256.Int)
	}
	return v.Int
}

func (v Value) IsZero() bool {
	return v.Int == nil || v.Int.IsZero()
}

func (v Value) Cmp(other Value) int {
	return v.safeInt().Cmp(other.safeInt())
}

func (v Value) ToBig() *big.Int {
	return v.safeInt().ToBig()
}

// Bytes returns the minimal big-endian representation; zero is empty.
func (v Value) Bytes() []byte {
	return v.safeInt().Bytes()
}

func (v *Value) UnmarshalText(input []byte) error {
	return v.Set(string(input))
}

// NumberBase splits an unsigned number literal into its digits and base:
// 16 for a 0x prefix, 10 otherwise. Leading zeros never switch to octal.
func NumberBase(s string) (string, int) {
	if digits, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return digits, 16
	}
	return s, 10
}

// Set implements pflag.Value. Decimal and 0x-prefixed hex are accepted.
func (v *Value) Set(value string) error {
	digits, base := NumberBase(value)
	i, ok := new(big.Int).SetString(digits, base)
	if !ok || i.Sign() < 0 {
		return fmt.Errorf("invalid unsigned amount %q", value)
	}
	res, overflow := NewValueFromBig(i)
	if overflow {
		return fmt.Errorf("amount %q overflows 256 bits", value)
	}
	*v = res
	return nil
}

func (v Value) String() string {
	return v.safeInt().Dec()
}

func (Value) Type() string {
	return "Value"
}

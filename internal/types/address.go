package types

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/ethereum/go-ethereum/crypto"
)

// AddrSize is the length of the address (in bytes)
const AddrSize = 32

// AddressHRP is the human-readable part of the bech32 address representation.
const AddressHRP = "erd"

var ErrMalformedAddress = errors.New("malformed address")

// Address represents the 32-byte address of an account or a contract.
type Address [AddrSize]byte

var EmptyAddress = Address{}

// ZeroAddress is the receiver of deploy transactions: the "create new account" marker.
var ZeroAddress = EmptyAddress

// BytesToAddress returns Address with value b.
// If b is larger than len(a), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// ParseAddress decodes the bech32 text representation of an address.
func ParseAddress(s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %q: %w", ErrMalformedAddress, s, err)
	}
	if hrp != AddressHRP {
		return EmptyAddress, fmt.Errorf("%w: %q: unexpected prefix %q", ErrMalformedAddress, s, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return EmptyAddress, fmt.Errorf("%w: %q: %w", ErrMalformedAddress, s, err)
	}
	if len(raw) != AddrSize {
		return EmptyAddress, fmt.Errorf("%w: %q: expected %d bytes, got %d", ErrMalformedAddress, s, AddrSize, len(raw))
	}
	return BytesToAddress(raw), nil
}

// MustParseAddress is ParseAddress for compile-time constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// SetBytes sets the address to the value of b.
// If b is larger than len(a), b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddrSize:]
	}
	*a = EmptyAddress
	copy(a[AddrSize-len(b):], b)
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) Hex() string { return hex.EncodeToString(a[:]) }

func (a Address) Equal(b Address) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}

func (a Address) IsEmpty() bool {
	return a.Equal(EmptyAddress)
}

// IsSmartContract reports whether the address belongs to a contract (eight leading zero bytes).
func (a Address) IsSmartContract() bool {
	return bytes.Equal(a[:8], make([]byte, 8))
}

// String implements fmt.Stringer and returns the bech32 form.
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		panic(err)
	}
	s, err := bech32.Encode(AddressHRP, conv)
	if err != nil {
		panic(err)
	}
	return s
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	res, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = res
	return nil
}

// Set implements pflag.Value.
func (a *Address) Set(value string) error {
	return a.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.
func (Address) Type() string {
	return "Address"
}

const (
	scAddressPrefixLen = 10
	shardSuffixLen     = 2
)

// VMTypeWasm identifies the wasm VM in contract addresses and deploy data.
var VMTypeWasm = []byte{0x05, 0x00}

// ComputeContractAddress returns the address of the contract that a deploy sent by creator with
// the given account nonce creates.
func ComputeContractAddress(creator Address, nonce uint64) Address {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], nonce)
	base := crypto.Keccak256(creator[:], nonceBytes[:])

	var prefix [scAddressPrefixLen]byte
	copy(prefix[8:], VMTypeWasm)
	copy(base[:scAddressPrefixLen], prefix[:])
	copy(base[AddrSize-shardSuffixLen:], creator[AddrSize-shardSuffixLen:])
	return BytesToAddress(base)
}

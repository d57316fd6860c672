package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const (
	aliceBech32 = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
	aliceHex    = "0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1"
)

func TestAddressRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), AddrSize, AddrSize).Draw(t, "raw")
		addr := BytesToAddress(raw)

		decoded, err := ParseAddress(addr.String())
		if err != nil {
			t.Fatalf("decode of %s failed: %v", addr, err)
		}
		if decoded != addr {
			t.Fatalf("round trip mismatch: %x != %x", decoded, addr)
		}
	})
}

func TestParseAddress_KnownWallet(t *testing.T) {
	t.Parallel()

	addr, err := ParseAddress(aliceBech32)
	require.NoError(t, err)
	assert.Equal(t, aliceHex, addr.Hex())
	assert.Equal(t, aliceBech32, addr.String())
	assert.False(t, addr.IsSmartContract())
}

func TestParseAddress_Malformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"",
		"erd1",
		"0x0139472eff6886771a982f3083da5d421f24c29181e63888228dc81ca60d69e1",
		// checksum broken in the last character
		"erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6tq",
		// valid checksum, wrong prefix
		"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
	} {
		_, err := ParseAddress(input)
		require.ErrorIs(t, err, ErrMalformedAddress, "input %q", input)
	}
}

func TestAddressTextAndFlag(t *testing.T) {
	t.Parallel()

	var addr Address
	require.NoError(t, addr.Set(aliceBech32))

	text, err := addr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, aliceBech32, string(text))

	var other Address
	require.NoError(t, other.UnmarshalText(text))
	assert.True(t, addr.Equal(other))
	assert.Equal(t, "Address", other.Type())

	require.Error(t, other.Set("not-an-address"))
}

func TestZeroAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, ZeroAddress.IsEmpty())
	assert.Equal(t, "erd1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq6gq4hu", ZeroAddress.String())
}

func TestComputeContractAddress(t *testing.T) {
	t.Parallel()

	creator := MustParseAddress(aliceBech32)

	addr := ComputeContractAddress(creator, 7)
	assert.True(t, addr.IsSmartContract())
	assert.Equal(t, VMTypeWasm, addr.Bytes()[8:10])
	assert.Equal(t, creator.Bytes()[30:], addr.Bytes()[30:])

	assert.Equal(t, addr, ComputeContractAddress(creator, 7))
	assert.NotEqual(t, addr, ComputeContractAddress(creator, 8))
}

package abi

import (
	"math/big"
	"testing"

	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAddress = types.MustParseAddress("erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th")

	pairType = StructOf("EpochAmountPair",
		Field{"epoch", TypeU64},
		Field{"amount", TypeBigUint},
	)
	energyType = StructOf("Energy",
		Field{"amount", TypeBigInt},
		Field{"last_update_epoch", TypeU64},
		Field{"total_locked_tokens", TypeBigUint},
	)
)

func TestTopEncode_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    Value
		expected []byte
	}{
		{"false", Bool(false), []byte{}},
		{"true", Bool(true), []byte{1}},
		{"zero u64", U64(0), []byte{}},
		{"u64", U64(0x0102), []byte{1, 2}},
		{"u32", U32(18), []byte{18}},
		{"zero biguint", NewBigUintFromUint64(0), []byte{}},
		{"biguint", NewBigUintFromUint64(1000), []byte{0x03, 0xe8}},
		{"bigint positive high bit", NewBigInt(128), []byte{0x00, 0x80}},
		{"bigint minus one", NewBigInt(-1), []byte{0xff}},
		{"bigint minus 129", NewBigInt(-129), []byte{0xff, 0x7f}},
		{"token", TokenIdentifier("MEX-455c57"), []byte("MEX-455c57")},
		{"address", Address(testAddress), testAddress.Bytes()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			enc, err := TopEncode(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, enc)
		})
	}
}

func TestNestedEncode_Struct(t *testing.T) {
	t.Parallel()

	energy := Struct{Type: energyType, Fields: []Value{NewBigInt(-1), U64(5), NewBigUintFromUint64(256)}}
	enc, err := TopEncode(energy)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 1, 0xff,
		0, 0, 0, 0, 0, 0, 0, 5,
		0, 0, 0, 2, 1, 0,
	}, enc)

	decoded, err := DecodeTop(energyType, enc)
	require.NoError(t, err)
	assert.Equal(t, "Energy { amount: -1, last_update_epoch: 5, total_locked_tokens: 256 }", Format(decoded))
}

func TestNestedEncode_List(t *testing.T) {
	t.Parallel()

	list := List{Elem: pairType, Items: []Value{
		Struct{Type: pairType, Fields: []Value{U64(1), NewBigUintFromUint64(2)}},
	}}
	nested, err := NestedEncode(list)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 1,
		0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 1, 2,
	}, nested)

	top, err := TopEncode(list)
	require.NoError(t, err)
	assert.Equal(t, nested[4:], top)
}

func TestEncodeArgs_Tuple(t *testing.T) {
	t.Parallel()

	args, err := EncodeArgs(Tuple{U64(360), U64(0)})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x01, 0x68}, {}}, args)

	args, err = EncodeArgs(U64(1))
	require.NoError(t, err)
	assert.Len(t, args, 1)

	_, err = NestedEncode(Tuple{U64(1)})
	require.ErrorIs(t, err, ErrEncoding)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, Check(TypeU64, U64(1)))
	require.ErrorIs(t, Check(TypeU64, U32(1)), ErrEncoding)
	require.ErrorIs(t, Check(TypeAddress, nil), ErrEncoding)
	require.ErrorIs(t, Check(TupleOf(TypeU64, TypeU64), Tuple{U64(1)}), ErrEncoding)
	require.ErrorIs(t, Check(ListOf(TypeAddress), List{Elem: TypeAddress, Items: []Value{U64(1)}}), ErrEncoding)
	require.NoError(t, Check(energyType, Zero(energyType)))
}

func TestDecodeTop(t *testing.T) {
	t.Parallel()

	v, err := DecodeTop(TypeBool, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = DecodeTop(TypeBool, nil)
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	_, err = DecodeTop(TypeBool, []byte{2})
	require.ErrorIs(t, err, ErrDecoding)

	v, err = DecodeTop(TypeU64, []byte{1, 0})
	require.NoError(t, err)
	assert.Equal(t, U64(256), v)

	_, err = DecodeTop(TypeU32, []byte{1, 0, 0, 0, 0})
	require.ErrorIs(t, err, ErrDecoding)

	v, err = DecodeTop(TypeBigInt, []byte{0xff, 0x7f})
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewInt(-129).Cmp(v.(BigInt).Int))

	_, err = DecodeTop(TypeAddress, []byte{1, 2})
	require.ErrorIs(t, err, ErrDecoding)

	_, err = DecodeTop(energyType, []byte{0, 0, 0, 9})
	require.ErrorIs(t, err, ErrDecoding)
}

func TestParse(t *testing.T) {
	t.Parallel()

	v, err := Parse(TypeU64, "0x10")
	require.NoError(t, err)
	assert.Equal(t, U64(16), v)

	// leading zeros are decimal, not octal
	v, err = Parse(TypeU64, "010")
	require.NoError(t, err)
	assert.Equal(t, U64(10), v)

	v, err = Parse(TypeU32, "0X1f")
	require.NoError(t, err)
	assert.Equal(t, U32(31), v)

	v, err = Parse(TypeBigInt, "-010")
	require.NoError(t, err)
	assert.Equal(t, "-10", v.(BigInt).String())

	v, err = Parse(TypeBigInt, "-0x10")
	require.NoError(t, err)
	assert.Equal(t, "-16", v.(BigInt).String())

	v, err = Parse(TypeAddress, testAddress.String())
	require.NoError(t, err)
	assert.Equal(t, Address(testAddress), v)

	v, err = Parse(TypeBuffer, "LockedMEX")
	require.NoError(t, err)
	assert.Equal(t, Buffer("LockedMEX"), v)

	v, err = Parse(TypeBuffer, "0x0102")
	require.NoError(t, err)
	assert.Equal(t, Buffer{1, 2}, v)

	v, err = Parse(energyType, "-5:10:1000")
	require.NoError(t, err)
	require.NoError(t, Check(energyType, v))

	pairs := StructOf("UnlockEpochAmountPairs", Field{"pairs", ListOf(pairType)})
	v, err = Parse(pairs, "360:1000,720:2000")
	require.NoError(t, err)
	require.NoError(t, Check(pairs, v))
	assert.Len(t, v.(Struct).Fields[0].(List).Items, 2)

	v, err = Parse(TupleOf(TypeAddress, TypeBigUint, TypeBigInt), testAddress.String()+":1:-1")
	require.NoError(t, err)
	assert.Len(t, v, 3)

	for _, tc := range []struct {
		tp    Type
		input string
	}{
		{TypeU64, "-1"},
		{TypeU64, "0x"},
		{TypeU64, "09z"},
		{TypeU32, "4294967296"},
		{TypeAddress, "erd1"},
		{TypeBool, "maybe"},
		{energyType, "1:2"},
		{TupleOf(TypeU64, TypeU64), "1"},
	} {
		_, err := Parse(tc.tp, tc.input)
		require.ErrorIs(t, err, ErrEncoding, "%s %q", tc.tp, tc.input)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MEX-455c57", Format(TokenIdentifier("MEX-455c57")))
	assert.Equal(t, "0x0102", Format(Buffer{1, 2}))
	assert.Equal(t, `"ok"`, Format(Buffer("ok")))
	assert.Equal(t, "(1, 2)", Format(Tuple{U64(1), U32(2)}))
	assert.Equal(t, "[]", Format(List{Elem: TypeU64}))
	assert.Equal(t, testAddress.String(), Format(Address(testAddress)))
}

package abi

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Format renders a value for humans.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "()"
	case Bool:
		return fmt.Sprint(bool(val))
	case U32:
		return fmt.Sprint(uint32(val))
	case U64:
		return fmt.Sprint(uint64(val))
	case BigUint:
		return types.Value(val).String()
	case BigInt:
		return val.value().String()
	case Address:
		return types.Address(val).String()
	case TokenIdentifier:
		return string(val)
	case Buffer:
		if isPrintable(val) {
			return fmt.Sprintf("%q", string(val))
		}
		return hexutil.Encode(val)
	case Struct:
		fields := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			fields[i] = val.Type.FieldNames[i] + ": " + Format(f)
		}
		return val.Type.Name + " { " + strings.Join(fields, ", ") + " }"
	case List:
		return "[" + formatAll(val.Items) + "]"
	case Tuple:
		return "(" + formatAll(val) + ")"
	}
	return fmt.Sprintf("%v", v)
}

func formatAll(values []Value) string {
	items := make([]string, len(values))
	for i, item := range values {
		items[i] = Format(item)
	}
	return strings.Join(items, ", ")
}

func isPrintable(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

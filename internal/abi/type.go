// Package abi encodes call arguments and decodes call results in the contract
// serialization format: "top" encoding for standalone arguments and results,
// "nested" encoding for values inside structs and lists.
package abi

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindBool Kind = iota + 1
	KindU32
	KindU64
	KindBigUint
	KindBigInt
	KindAddress
	KindTokenIdentifier
	KindBuffer
	KindStruct
	KindList
	// KindTuple groups several standalone arguments (a multi-value); it is only valid at argument level.
	KindTuple
)

var kindNames = map[Kind]string{
	KindBool:            "bool",
	KindU32:             "u32",
	KindU64:             "u64",
	KindBigUint:         "BigUint",
	KindBigInt:          "BigInt",
	KindAddress:         "Address",
	KindTokenIdentifier: "TokenIdentifier",
	KindBuffer:          "ManagedBuffer",
	KindStruct:          "struct",
	KindList:            "List",
	KindTuple:           "MultiValue",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Type describes the shape of a value.
type Type struct {
	Kind Kind
	// Name is set for structs.
	Name string
	// Fields holds struct fields, tuple members or, for lists, the single element type.
	Fields []Type
	// FieldNames parallels Fields for structs.
	FieldNames []string
}

var (
	TypeBool            = Type{Kind: KindBool}
	TypeU32             = Type{Kind: KindU32}
	TypeU64             = Type{Kind: KindU64}
	TypeBigUint         = Type{Kind: KindBigUint}
	TypeBigInt          = Type{Kind: KindBigInt}
	TypeAddress         = Type{Kind: KindAddress}
	TypeTokenIdentifier = Type{Kind: KindTokenIdentifier}
	TypeBuffer          = Type{Kind: KindBuffer}
)

// Field is a named struct member.
type Field struct {
	Name string
	Type Type
}

func StructOf(name string, fields ...Field) Type {
	t := Type{Kind: KindStruct, Name: name}
	for _, f := range fields {
		t.Fields = append(t.Fields, f.Type)
		t.FieldNames = append(t.FieldNames, f.Name)
	}
	return t
}

func ListOf(elem Type) Type {
	return Type{Kind: KindList, Fields: []Type{elem}}
}

func TupleOf(members ...Type) Type {
	return Type{Kind: KindTuple, Fields: members}
}

// Elem returns the element type of a list.
func (t Type) Elem() Type {
	return t.Fields[0]
}

func (t Type) String() string {
	switch t.Kind {
	case KindStruct:
		return t.Name
	case KindList:
		return "List<" + t.Elem().String() + ">"
	case KindTuple:
		members := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			members[i] = f.String()
		}
		return "(" + strings.Join(members, ",") + ")"
	default:
		return t.Kind.String()
	}
}

package types

import "strings"

// CodeMetadata holds the two deploy flag bytes of a contract.
type CodeMetadata [2]byte

const (
	metadataUpgradeable = 0x01
	metadataReadable    = 0x04
	metadataPayable     = 0x02
	metadataPayableBySc = 0x04
)

func NewCodeMetadata(upgradeable, readable, payable, payableBySc bool) CodeMetadata {
	var m CodeMetadata
	if upgradeable {
		m[0] |= metadataUpgradeable
	}
	if readable {
		m[0] |= metadataReadable
	}
	if payable {
		m[1] |= metadataPayable
	}
	if payableBySc {
		m[1] |= metadataPayableBySc
	}
	return m
}

// DefaultCodeMetadata is upgradeable, readable and payable by contracts.
var DefaultCodeMetadata = NewCodeMetadata(true, true, false, true)

func (m CodeMetadata) Bytes() []byte {
	return m[:]
}

func (m CodeMetadata) Upgradeable() bool { return m[0]&metadataUpgradeable != 0 }
func (m CodeMetadata) Readable() bool    { return m[0]&metadataReadable != 0 }
func (m CodeMetadata) Payable() bool     { return m[1]&metadataPayable != 0 }
func (m CodeMetadata) PayableBySc() bool { return m[1]&metadataPayableBySc != 0 }

func (m CodeMetadata) String() string {
	var flags []string
	if m.Upgradeable() {
		flags = append(flags, "upgradeable")
	}
	if m.Readable() {
		flags = append(flags, "readable")
	}
	if m.Payable() {
		flags = append(flags, "payable")
	}
	if m.PayableBySc() {
		flags = append(flags, "payable-by-sc")
	}
	return strings.Join(flags, "|")
}

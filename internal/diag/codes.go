package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown findings, kept for forward compatibility.
	UnknownCode Code = 0

	// Tag derivation
	TagInfo    Code = 1000
	TagTooLong Code = 1001

	// Unit validation (generator-side preconditions)
	UnitInfo          Code = 2000
	UnitPrivate       Code = 2001
	UnitEmptyName     Code = 2002
	UnitDuplicateUnit Code = 2003
	UnitBlankOverride Code = 2004

	// Unit file decoding / encoding
	CodecInfo           Code = 3000
	CodecSchemaMismatch Code = 3001
	CodecTruncatedFile  Code = 3002
)

// String returns the stable textual form used in CLI output, e.g. "LT1001".
func (c Code) String() string {
	return fmt.Sprintf("LT%04d", uint16(c))
}

// label returns a short mnemonic for known codes, used by verbose output.
func (c Code) label() string {
	switch c {
	case TagTooLong:
		return "tag-too-long"
	case UnitPrivate:
		return "unit-private"
	case UnitEmptyName:
		return "unit-empty-name"
	case UnitDuplicateUnit:
		return "unit-duplicate"
	case UnitBlankOverride:
		return "unit-blank-override"
	case CodecSchemaMismatch:
		return "codec-schema-mismatch"
	case CodecTruncatedFile:
		return "codec-truncated-file"
	}
	return ""
}

// Describe returns "LT1001 (tag-too-long)" for known codes and the bare
// numeric form otherwise.
func (c Code) Describe() string {
	if l := c.label(); l != "" {
		return fmt.Sprintf("%s (%s)", c.String(), l)
	}
	return c.String()
}

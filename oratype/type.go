package oratype

import "fmt"

// Type is a logical, dialect-neutral column type produced by the Registry.
// Concrete variants carry the modifiers extracted from the native type
// string (precision, scale, limit).
type Type interface {
	Name() string
}

// Integer NUMBER with zero scale
type Integer struct {
	Precision int
	Limit     int
}

func (Integer) Name() string { return "integer" }

// Decimal NUMBER/DECIMAL with nonzero or unspecified scale
type Decimal struct {
	Precision int
	Scale     int
}

func (Decimal) Name() string { return "decimal" }

// Float FLOAT, BINARY_FLOAT and BINARY_DOUBLE
type Float struct {
	Precision int
}

func (Float) Name() string { return "float" }

// String CHAR and VARCHAR2
type String struct {
	Limit int
}

func (String) Name() string { return "string" }

// NString NCHAR and NVARCHAR2
type NString struct {
	Limit int
}

func (NString) Name() string { return "nstring" }

// Text CLOB and LONG
type Text struct{}

func (Text) Name() string { return "text" }

// NText NCLOB
type NText struct{}

func (NText) Name() string { return "ntext" }

// Boolean emulated boolean. FromString is set when the underlying column is
// a single character VARCHAR2(1) rather than NUMBER(1).
type Boolean struct {
	FromString bool
}

func (Boolean) Name() string { return "boolean" }

// DateTime DATE and plain TIMESTAMP
type DateTime struct{}

func (DateTime) Name() string { return "datetime" }

// TimestampTZ TIMESTAMP WITH TIME ZONE
type TimestampTZ struct{}

func (TimestampTZ) Name() string { return "timestamptz" }

// TimestampLTZ TIMESTAMP WITH LOCAL TIME ZONE
type TimestampLTZ struct{}

func (TimestampLTZ) Name() string { return "timestampltz" }

// Raw RAW and LONG RAW
type Raw struct {
	Limit int
}

func (Raw) Name() string { return "raw" }

// Binary BLOB and BFILE
type Binary struct{}

func (Binary) Name() string { return "binary" }

// Unknown is returned when no pattern matches; the native type string is
// preserved so callers can surface it unchanged.
type Unknown struct {
	Native string
}

func (u Unknown) Name() string { return fmt.Sprintf("unknown(%s)", u.Native) }

// Serialized wraps another logical type whose values pass through an
// application level serializer before they hit the column.
type Serialized struct {
	Wrapped Type
}

func (s Serialized) Name() string { return "serialized " + s.Wrapped.Name() }

func (Serialized) serializing() {}

// IsSerialized reports whether t is a serializing wrapper.
func IsSerialized(t Type) bool {
	_, ok := t.(interface{ serializing() })
	return ok
}

// IsLOB reports whether t maps to a large object column that must be
// written through a LOB handle after the row exists.
func IsLOB(t Type) bool {
	if s, ok := t.(Serialized); ok {
		return IsLOB(s.Wrapped)
	}
	switch t.(type) {
	case Text, NText, Binary:
		return true
	}
	return false
}

// IsCharacterLOB reports whether t is a character (as opposed to binary)
// large object.
func IsCharacterLOB(t Type) bool {
	if s, ok := t.(Serialized); ok {
		return IsCharacterLOB(s.Wrapped)
	}
	switch t.(type) {
	case Text, NText:
		return true
	}
	return false
}

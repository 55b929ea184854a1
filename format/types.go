package format

// Type is the 1-byte tag that selects how a field value is encoded.
type Type uint8

const (
	TypeEOO      Type = 0x00 // TypeEOO terminates a field list, it carries no name or value.
	TypeDouble   Type = 0x01 // TypeDouble is an 8-byte IEEE 754 value.
	TypeString   Type = 0x02 // TypeString is <int32 lengthWithNul><bytes><NUL>.
	TypeObject   Type = 0x03 // TypeObject is an embedded, self-sized document.
	TypeArray    Type = 0x04 // TypeArray is an embedded document whose names are ignored.
	TypeBoolean  Type = 0x08 // TypeBoolean is a single byte, 0 or 1.
	TypeNull     Type = 0x0A // TypeNull has no value bytes.
	TypeInt32    Type = 0x10 // TypeInt32 is a 4-byte signed integer.
	TypeDatetime Type = 0x11 // TypeDatetime is an 8-byte signed count of microseconds since the Unix epoch.
	TypeInt64    Type = 0x12 // TypeInt64 is an 8-byte signed integer.
)

// Size of the structural parts of a document.
const (
	SizeHeader     = 4 // int32 totalSize
	SizeTerminator = 1 // EOO byte
	SizeTag        = 1
	SizeLength     = 4 // int32 length prefix of a string value

	// MinDocumentSize is the size of an empty document.
	MinDocumentSize = SizeHeader + SizeTerminator
)

// VariableSize is returned by FixedValueSize for types whose value size is
// read from the value itself.
const VariableSize = -1

// IsValid reports whether t is one of the supported tags.
func (t Type) IsValid() bool {
	switch t {
	case TypeEOO, TypeDouble, TypeString, TypeObject, TypeArray,
		TypeBoolean, TypeNull, TypeInt32, TypeDatetime, TypeInt64:
		return true
	default:
		return false
	}
}

// FixedValueSize returns the value size in bytes for fixed-width types,
// VariableSize for String/Object/Array, and VariableSize for unknown tags
// (callers check IsValid first).
//
// This is the only place that maps a tag to its payload width; the document
// walk relies on it to advance from one field to the next.
func (t Type) FixedValueSize() int {
	switch t {
	case TypeEOO, TypeNull:
		return 0
	case TypeBoolean:
		return 1
	case TypeInt32:
		return 4
	case TypeDouble, TypeInt64, TypeDatetime:
		return 8
	default:
		return VariableSize
	}
}

// IsEmbedded reports whether t holds a nested document.
func (t Type) IsEmbedded() bool {
	return t == TypeObject || t == TypeArray
}

// IsNumeric reports whether t holds a number.
func (t Type) IsNumeric() bool {
	return t == TypeDouble || t == TypeInt32 || t == TypeInt64
}

func (t Type) String() string {
	switch t {
	case TypeEOO:
		return "EOO"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeObject:
		return "Object"
	case TypeArray:
		return "Array"
	case TypeBoolean:
		return "Boolean"
	case TypeNull:
		return "Null"
	case TypeInt32:
		return "Int32"
	case TypeDatetime:
		return "Datetime"
	case TypeInt64:
		return "Int64"
	default:
		return "Unknown"
	}
}

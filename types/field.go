package types

// FieldType classifies a schema field's semantic type.
type FieldType int

const (
	// String fields hold text values.
	String FieldType = iota
	// Number fields hold numeric values (any Go numeric kind; JSON
	// round-trips them as float64).
	Number
	// Object fields hold a nested document described by Fields.
	Object
	// Array fields hold a list; when Fields is set, every element is a
	// nested document validated against those specs.
	Array
	// Reference fields hold one identifier, or a list of identifiers,
	// pointing into the collection named by Ref.
	Reference
)

// String returns the string representation of the FieldType.
func (ft FieldType) String() string {
	switch ft {
	case String:
		return "string"
	case Number:
		return "number"
	case Object:
		return "object"
	case Array:
		return "array"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// DefaultKind classifies how a field default is produced.
type DefaultKind int

const (
	// DefaultNone means the field has no default.
	DefaultNone DefaultKind = iota
	// DefaultLiteral copies the Default value verbatim.
	DefaultLiteral
	// DefaultGenerated invokes Generate at document-creation time.
	// Used for identifiers; never evaluated at schema-definition time.
	DefaultGenerated
)

// FieldSpec declares one recognized field of a schema: its type, its
// constraints, and how a missing value is defaulted. Specs are built
// once when a schema is defined and are immutable afterwards.
type FieldSpec struct {
	// Name is the document key this spec governs.
	Name string

	// Type is the field's semantic type.
	Type FieldType

	// Required fields must be present and non-empty on every write.
	Required bool

	// Enum restricts a present value to this closed set.
	// Validated on every write; empty means unrestricted.
	Enum []string

	// Index marks the field as a query-planning hint. Advisory only;
	// nothing is structurally enforced.
	Index bool

	// Default is the literal value applied when DefaultKind is
	// DefaultLiteral and the field is unset at creation.
	Default any

	// DefaultKind selects between no default, Default, and Generate.
	DefaultKind DefaultKind

	// Generate produces a value at creation time when DefaultKind is
	// DefaultGenerated.
	Generate func() string

	// Ref names the target collection for Reference fields.
	Ref string

	// Fields describes the subfields of an Object field, or the
	// element document of an Array field.
	Fields []FieldSpec
}

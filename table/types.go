package table

import "fmt"

// DataType is the physical type of a column.
type DataType int

const (
	Unknown DataType = iota
	Int32
	Int64
	Float
	Double
	String
	Bool
)

func (d DataType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// ParseDataType is the inverse of DataType.String
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "int32":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "float":
		return Float, nil
	case "double":
		return Double, nil
	case "string":
		return String, nil
	case "bool":
		return Bool, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

type (
	Field struct {
		Name string
		Type DataType
	}

	// Schema is the ordered list of columns of a table. Column order is stable for
	// the lifetime of the schema.
	Schema struct {
		fields []Field
	}
)

func NewSchema(fields ...Field) *Schema {
	f := make([]Field, len(fields))
	copy(f, fields)
	return &Schema{fields: f}
}

func (s *Schema) NumFields() int {
	return len(s.fields)
}

func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the schema's fields
func (s *Schema) Fields() []Field {
	f := make([]Field, len(s.fields))
	copy(f, s.fields)
	return f
}

func (s *Schema) String() string {
	str := "schema<"
	for i, f := range s.fields {
		if i > 0 {
			str += ", "
		}
		str += f.Name + ": " + f.Type.String()
	}
	return str + ">"
}

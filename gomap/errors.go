package gomap

import "fmt"

// MarshalError represents an error during marshaling
type MarshalError struct {
	FieldPath string // Field path (e.g., "channel.item[2].title")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during unmarshaling
type UnmarshalError struct {
	FieldPath string // Field path (e.g., "channel.item[2].title")
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// SchemaError represents an error deriving the field schema of a type.
type SchemaError struct {
	TypeName string
	Message  string
	Err      error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema error: %s", e.Message)
	if e.TypeName != "" {
		msg = fmt.Sprintf("schema error for %s: %s", e.TypeName, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a mandatory field with no matching node.
type MissingFieldError struct {
	Record    string // Go type name of the record
	Field     string // element name of the field
	FieldPath string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q of %s at %s", e.Field, e.Record, e.FieldPath)
}

// ConversionError reports text that could not be converted to a field's type.
type ConversionError struct {
	FieldPath string
	Raw       string
	Target    string
	Err       error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", e.Raw, e.Target)
	if e.FieldPath != "" {
		msg = fmt.Sprintf("conversion error at %s: %s", e.FieldPath, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// WriteError reports output that could not be produced or stored.
type WriteError struct {
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("write error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("write error: %s", e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

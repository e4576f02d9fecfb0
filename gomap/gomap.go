package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/signadot/xmlmap/debug"
	"github.com/signadot/xmlmap/ir"
)

// Role says which part of the owning element a field binds.
type Role int

const (
	// RoleElement binds child elements by name.
	RoleElement Role = iota
	// RoleAttrs binds every attribute of the owning element as one map.
	RoleAttrs
	// RoleCData binds the owning element's CDATA sections.
	RoleCData
)

func (r Role) String() string {
	switch r {
	case RoleElement:
		return "element"
	case RoleAttrs:
		return "attrs"
	case RoleCData:
		return "cdata"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Category is the binding policy chosen from a field's Go type.
type Category int

const (
	CategoryScalar Category = iota
	CategoryOptional
	CategoryRepeated
	CategoryOptionalRepeated
	CategoryAttrs
	CategoryCData
	CategoryLeaf
	CategoryNamespaced
	CategoryNested
	CategoryRaw
	CategoryCustom
)

var categoryNames = [...]string{
	CategoryScalar:           "scalar",
	CategoryOptional:         "optional",
	CategoryRepeated:         "repeated",
	CategoryOptionalRepeated: "optional-repeated",
	CategoryAttrs:            "attrs",
	CategoryCData:            "cdata",
	CategoryLeaf:             "leaf",
	CategoryNamespaced:       "namespaced",
	CategoryNested:           "nested",
	CategoryRaw:              "raw",
	CategoryCustom:           "custom",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// FieldInfo holds field metadata extracted from struct tags
type FieldInfo struct {
	// Name is the struct field name
	Name string

	// XMLName is the element's local name
	XMLName string

	// Prefix is the element's namespace prefix, possibly empty
	Prefix string

	// Type is the Go type of the field
	Type reflect.Type

	// Index is the field's index path, through embedded structs
	Index []int

	Role     Role
	Category Category

	// Required makes decoding fail when no node matches the field
	Required bool

	// ImplementsTextMarshaler indicates if the field type implements encoding.TextMarshaler
	ImplementsTextMarshaler bool

	// ImplementsTextUnmarshaler indicates if the field type implements encoding.TextUnmarshaler
	ImplementsTextUnmarshaler bool
}

// QName is the qualified element name the field matches.
func (f *FieldInfo) QName() string {
	return ir.JoinName(f.Prefix, f.XMLName)
}

// StructSchema is the ordered field list of a record type.
type StructSchema struct {
	Type reflect.Type

	// Root is the document element name given by a marker field
	// `XMLName struct{} xml:"name"`, or empty.
	Root string

	Fields []*FieldInfo

	byQName map[string]*FieldInfo
	attrs   *FieldInfo
}

// TypeName is the record name used in diagnostics.
func (s *StructSchema) TypeName() string {
	return typeName(s.Type)
}

// Field returns the element field matching a qualified name.
func (s *StructSchema) Field(qname string) *FieldInfo {
	return s.byQName[qname]
}

// Required returns the mandatory fields in schema order.
func (s *StructSchema) Required() []*FieldInfo {
	var res []*FieldInfo
	for _, f := range s.Fields {
		if f.Required {
			res = append(res, f)
		}
	}
	return res
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func implementsTextUnmarshaler(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

func implementsTextMarshaler(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

func isCustomType(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(fromXMLerType) || t.Implements(toXMLerType) ||
		reflect.PointerTo(t).Implements(toXMLerType)
}

// isScalarType reports whether t is bound from element text.
func isScalarType(t reflect.Type) bool {
	if t == charType || t == anyValueType || t == cdataType {
		return true
	}
	if implementsTextUnmarshaler(t) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	}
	return false
}

// valueCategory classifies a single (non-repeated) element value type.
func valueCategory(t reflect.Type) (Category, error) {
	switch {
	case t == nodePtrType:
		return CategoryRaw, nil
	case isCustomType(t):
		return CategoryCustom, nil
	case isLeafType(t):
		vt := t.Field(0).Type
		if !isScalarType(vt) {
			return 0, fmt.Errorf("leaf value type %s is not a scalar", vt)
		}
		return CategoryLeaf, nil
	case isNamespacedType(t):
		if _, err := valueCategory(t.Field(0).Type); err != nil {
			return 0, err
		}
		return CategoryNamespaced, nil
	case isScalarType(t):
		return CategoryScalar, nil
	case t.Kind() == reflect.Struct:
		return CategoryNested, nil
	case t.Kind() == reflect.Pointer:
		if t.Elem().Kind() == reflect.Pointer {
			return 0, fmt.Errorf("unsupported pointer to pointer %s", t)
		}
		return valueCategory(t.Elem())
	}
	return 0, fmt.Errorf("unsupported type %s", t)
}

// fieldCategory classifies a field type, returning its category and the
// type of a single bound element value.
func fieldCategory(t reflect.Type) (Category, reflect.Type, error) {
	if t == nodePtrType || isScalarType(t) {
		c, err := valueCategory(t)
		return c, t, err
	}
	switch t.Kind() {
	case reflect.Pointer:
		et := t.Elem()
		if et.Kind() == reflect.Slice && !isScalarType(et) {
			if _, err := valueCategory(et.Elem()); err != nil {
				return 0, nil, err
			}
			return CategoryOptionalRepeated, et.Elem(), nil
		}
		if _, err := valueCategory(et); err != nil {
			return 0, nil, err
		}
		return CategoryOptional, et, nil
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Array {
			return 0, nil, fmt.Errorf("unsupported array type %s, use a slice", t)
		}
		if _, err := valueCategory(t.Elem()); err != nil {
			return 0, nil, err
		}
		return CategoryRepeated, t.Elem(), nil
	case reflect.Map:
		return 0, nil, fmt.Errorf("map type %s requires the attrs flag", t)
	}
	c, err := valueCategory(t)
	return c, t, err
}

func isAttrValueType(t reflect.Type) bool {
	if t == anyValueType {
		return true
	}
	return t.Kind() != reflect.Slice && t != cdataType && isScalarType(t)
}

func cdataShape(t reflect.Type) bool {
	strip := t
	if strip.Kind() == reflect.Pointer || strip.Kind() == reflect.Slice {
		strip = strip.Elem()
	}
	return strip == cdataType || strip.Kind() == reflect.String
}

// buildSchema derives the schema of a struct type. required lists fields
// registered as mandatory, by Go name or element name.
func buildSchema(typ reflect.Type, required []string) (*StructSchema, error) {
	if typ.Kind() != reflect.Struct {
		return nil, &SchemaError{TypeName: typeName(typ), Message: "not a struct"}
	}
	s := &StructSchema{
		Type:    typ,
		byQName: map[string]*FieldInfo{},
	}
	if err := s.addFields(typ, nil); err != nil {
		return nil, err
	}
	for _, name := range required {
		f := s.lookup(name)
		if f == nil {
			return nil, &SchemaError{
				TypeName: s.TypeName(),
				Message:  fmt.Sprintf("required field %q does not exist", name),
			}
		}
		f.Required = true
	}
	if debug.Schema() {
		for _, f := range s.Fields {
			debug.Log().Debug("schema field", "type", s.TypeName(), "field", f.Name,
				"name", f.QName(), "role", f.Role, "category", f.Category, "required", f.Required)
		}
	}
	return s, nil
}

func (s *StructSchema) lookup(name string) *FieldInfo {
	for _, f := range s.Fields {
		if f.Name == name || f.XMLName == name || f.QName() == name {
			return f
		}
	}
	return nil
}

func (s *StructSchema) addFields(typ reflect.Type, index []int) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, err := parseFieldTag(field.Tag.Get(TagKey))
		if err != nil {
			return &SchemaError{TypeName: s.TypeName(), Message: fmt.Sprintf("field %s", field.Name), Err: err}
		}
		if field.Name == rootField && field.Type == emptyStructType {
			if tag.Name != "" && len(index) == 0 {
				s.Root = tag.Name
			}
			continue
		}
		if field.Name == "_" {
			continue
		}
		if tag.Omit {
			continue
		}
		fieldIndex := append(append([]int(nil), index...), i)
		if field.Anonymous && tag.Name == "" && !tag.Attrs && !tag.CData {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				return &SchemaError{
					TypeName: s.TypeName(),
					Message:  fmt.Sprintf("embedded pointer %s is not supported", field.Name),
				}
			}
			if ft.Kind() == reflect.Struct && !isScalarType(ft) && !isCustomType(ft) {
				if err := s.addFields(ft, fieldIndex); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		info, err := newFieldInfo(field, tag, fieldIndex)
		if err != nil {
			return &SchemaError{TypeName: s.TypeName(), Message: fmt.Sprintf("field %s", field.Name), Err: err}
		}
		switch info.Role {
		case RoleAttrs:
			if s.attrs != nil {
				return &SchemaError{
					TypeName: s.TypeName(),
					Message:  fmt.Sprintf("fields %s and %s both capture attributes", s.attrs.Name, info.Name),
				}
			}
			s.attrs = info
		case RoleElement:
			if prev, ok := s.byQName[info.QName()]; ok {
				return &SchemaError{
					TypeName: s.TypeName(),
					Message:  fmt.Sprintf("fields %s and %s both bind <%s>", prev.Name, info.Name, info.QName()),
				}
			}
			s.byQName[info.QName()] = info
		}
		s.Fields = append(s.Fields, info)
	}
	return nil
}

func newFieldInfo(field reflect.StructField, tag *fieldTag, index []int) (*FieldInfo, error) {
	info := &FieldInfo{
		Name:                      field.Name,
		XMLName:                   field.Name,
		Type:                      field.Type,
		Index:                     index,
		Required:                  tag.Required,
		ImplementsTextMarshaler:   implementsTextMarshaler(field.Type),
		ImplementsTextUnmarshaler: implementsTextUnmarshaler(field.Type),
	}
	if tag.Name != "" {
		info.XMLName = tag.Name
	}
	ft := field.Type
	switch {
	case tag.Attrs:
		if ft.Kind() != reflect.Map || ft.Key().Kind() != reflect.String || !isAttrValueType(ft.Elem()) {
			return nil, fmt.Errorf("attrs field must be a map from string to a scalar, got %s", ft)
		}
		info.Role = RoleAttrs
		info.Category = CategoryAttrs
		return info, nil
	case tag.CData || cdataElem(ft):
		if !cdataShape(ft) {
			return nil, fmt.Errorf("cdata field must be a string or CData, pointer or slice thereof, got %s", ft)
		}
		info.Role = RoleCData
		info.Category = CategoryCData
		return info, nil
	}
	cat, vt, err := fieldCategory(ft)
	if err != nil {
		return nil, err
	}
	info.Category = cat
	info.Prefix, info.XMLName = ir.SplitName(info.XMLName)
	if info.Prefix == "" && isNamespacedType(derefType(vt)) {
		if i := strings.IndexByte(info.XMLName, '_'); i > 0 {
			info.Prefix, info.XMLName = info.XMLName[:i], info.XMLName[i+1:]
		}
	}
	return info, nil
}

func cdataElem(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	return t == cdataType
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

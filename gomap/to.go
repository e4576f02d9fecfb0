package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/signadot/xmlmap/debug"
	"github.com/signadot/xmlmap/ir"
)

// ToIR converts a Go record to an XML IR node.
//
// The document element is named by the RootName option, else by a marker
// field `XMLName struct{} xml:"name"`, else by the Go type name.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	return defaultMapper.ToIR(v, opts...)
}

func (m *Mapper) ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	if v == nil {
		return nil, &MarshalError{Message: "cannot marshal nil"}
	}
	cfg := newMapConfig(opts...)
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, &MarshalError{Message: "cannot marshal nil pointer"}
		}
		val = val.Elem()
	}
	if !val.CanAddr() {
		cp := reflect.New(val.Type()).Elem()
		cp.Set(val)
		val = cp
	}
	e := &encoder{m: m, cfg: cfg, visited: map[uintptr]string{}}
	name := cfg.RootName
	if val.Kind() == reflect.Struct && !isCustomType(val.Type()) {
		s, err := m.Schema(val.Type())
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = s.Root
		}
	}
	if name == "" {
		name = typeName(val.Type())
	}
	if debug.Encode() {
		debug.Log().Debug("encode", "root", name, "type", val.Type().String())
	}
	node, err := e.encodeValue(name, val, "")
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = ir.Element(name)
	}
	return node, nil
}

type encoder struct {
	m       *Mapper
	cfg     *mapConfig
	visited map[uintptr]string
}

func (e *encoder) encodeStruct(name string, val reflect.Value, path string) (*ir.Node, error) {
	s, err := e.m.Schema(val.Type())
	if err != nil {
		return nil, err
	}
	node := ir.Element(name)
	for _, f := range s.Fields {
		fv := val.FieldByIndex(f.Index)
		fpath := joinPath(path, f.QName())
		switch f.Role {
		case RoleAttrs:
			if err := e.encodeAttrs(node, fv, fpath); err != nil {
				return nil, err
			}
		case RoleCData:
			node.CData = append(node.CData, cdataSegments(fv)...)
		default:
			children, err := e.encodeField(f, fv, fpath)
			if err != nil {
				return nil, err
			}
			node.Append(children...)
		}
	}
	return node, nil
}

func (e *encoder) encodeField(f *FieldInfo, fv reflect.Value, fpath string) ([]*ir.Node, error) {
	switch f.Category {
	case CategoryOptionalRepeated:
		if fv.IsNil() {
			return nil, nil
		}
		return e.encodeSlice(f.QName(), fv.Elem(), fpath)
	case CategoryRepeated:
		return e.encodeSlice(f.QName(), fv, fpath)
	}
	n, err := e.encodeValue(f.QName(), fv, fpath)
	if err != nil || n == nil {
		return nil, err
	}
	return []*ir.Node{n}, nil
}

func (e *encoder) encodeSlice(name string, fv reflect.Value, fpath string) ([]*ir.Node, error) {
	var res []*ir.Node
	for i := 0; i < fv.Len(); i++ {
		n, err := e.encodeValue(name, fv.Index(i), fmt.Sprintf("%s[%d]", fpath, i))
		if err != nil {
			return nil, err
		}
		if n != nil {
			res = append(res, n)
		}
	}
	return res, nil
}

// encodeValue returns the element for a single value, or nil when the value
// is absent.
func (e *encoder) encodeValue(name string, val reflect.Value, path string) (*ir.Node, error) {
	typ := val.Type()
	if typ == nodePtrType {
		if val.IsNil() {
			return nil, nil
		}
		n := val.Interface().(*ir.Node).Clone()
		n.Parent = nil
		n.Prefix, n.Tag = ir.SplitName(name)
		return n, nil
	}
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, nil
		}
		ptr := val.Pointer()
		if prev, seen := e.visited[ptr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prev, path, prev),
			}
		}
		e.visited[ptr] = path
		n, err := e.encodeValue(name, val.Elem(), path)
		delete(e.visited, ptr)
		return n, err
	}
	if c, ok := asToXMLer(val); ok {
		n, err := c.ToXML()
		if err != nil {
			return nil, &MarshalError{FieldPath: path, Message: "ToXML failed", Err: err}
		}
		if n == nil {
			return nil, nil
		}
		n.Prefix, n.Tag = ir.SplitName(name)
		return n, nil
	}
	switch {
	case isNamespacedType(typ):
		return e.encodeValue(name, val.Field(0), path)
	case isLeafType(typ):
		text, err := formatScalar(val.Field(0), path)
		if err != nil {
			return nil, err
		}
		n := ir.FromText(name, text)
		setSortedAttrs(n, val.Field(1).Interface().(map[string]string))
		return n, nil
	case isScalarType(typ):
		text, err := formatScalar(val, path)
		if err != nil {
			return nil, err
		}
		return ir.FromText(name, text), nil
	case typ.Kind() == reflect.Struct:
		return e.encodeStruct(name, val, path)
	}
	return nil, &MarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported type %s", typ)}
}

func asToXMLer(val reflect.Value) (ToXMLer, bool) {
	if c, ok := val.Interface().(ToXMLer); ok {
		return c, true
	}
	if val.CanAddr() {
		if c, ok := val.Addr().Interface().(ToXMLer); ok {
			return c, true
		}
	}
	return nil, false
}

func (e *encoder) encodeAttrs(node *ir.Node, fv reflect.Value, fpath string) error {
	if fv.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, fv.Len())
	vals := make(map[string]reflect.Value, fv.Len())
	iter := fv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		vals[k] = iter.Value()
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := vals[k]
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		text, err := formatScalar(cp, fpath+"@"+k)
		if err != nil {
			return err
		}
		node.SetAttr(k, text)
	}
	return nil
}

func setSortedAttrs(n *ir.Node, attrs map[string]string) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		n.SetAttr(k, attrs[k])
	}
}

func cdataSegments(fv reflect.Value) []string {
	switch fv.Kind() {
	case reflect.Slice:
		res := make([]string, fv.Len())
		for i := range res {
			res[i] = fv.Index(i).String()
		}
		return res
	case reflect.Pointer:
		if fv.IsNil() {
			return nil
		}
		return []string{fv.Elem().String()}
	}
	if fv.String() == "" {
		return nil
	}
	return []string{fv.String()}
}

// formatScalar renders a scalar as element or attribute text.
func formatScalar(val reflect.Value, path string) (string, error) {
	typ := val.Type()
	switch typ {
	case anyValueType:
		return val.Interface().(AnyValue).Raw(), nil
	case charType:
		if val.Int() == 0 {
			return "", nil
		}
		return string(rune(val.Int())), nil
	}
	if tm, ok := asTextMarshaler(val); ok {
		d, err := tm.MarshalText()
		if err != nil {
			return "", &MarshalError{FieldPath: path, Message: "MarshalText failed", Err: err}
		}
		return string(d), nil
	}
	switch typ.Kind() {
	case reflect.String:
		return val.String(), nil
	case reflect.Slice:
		return string(val.Bytes()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(val.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(val.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(val.Float(), 'g', -1, typ.Bits()), nil
	case reflect.Bool:
		return formatBool(val.Bool()), nil
	}
	return "", &MarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported scalar type %s", typ)}
}

func asTextMarshaler(val reflect.Value) (encoding.TextMarshaler, bool) {
	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		return tm, true
	}
	if val.CanAddr() {
		if tm, ok := val.Addr().Interface().(encoding.TextMarshaler); ok {
			return tm, true
		}
	}
	return nil, false
}

package gomap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/xmlmap/debug"
	"github.com/signadot/xmlmap/ir"
)

// FromIR converts an XML IR node to a Go value.
// v must be a non-nil pointer to a struct, or to a type implementing FromXMLer.
// The name of node itself is not checked against v.
func FromIR(node *ir.Node, v any, opts ...UnmapOption) error {
	return defaultMapper.FromIR(node, v, opts...)
}

func (m *Mapper) FromIR(node *ir.Node, v any, opts ...UnmapOption) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	if node == nil {
		return &UnmarshalError{Message: "IR node is nil"}
	}
	d := &decoder{m: m, cfg: newUnmapConfig(opts...)}
	elem := val.Elem()
	if debug.Decode() {
		debug.Log().Debug("decode", "root", node.Name(), "type", elem.Type().String())
	}
	if c, ok := v.(FromXMLer); ok {
		return c.FromXML(node)
	}
	if elem.Kind() != reflect.Struct {
		return &UnmarshalError{Message: fmt.Sprintf("destination must point to a struct, got %s", elem.Type())}
	}
	return d.decodeStruct(node, elem, "")
}

type decoder struct {
	m   *Mapper
	cfg *unmapConfig
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// decodeStruct binds the fields of val from node in schema order, stopping at
// the first hard failure.
func (d *decoder) decodeStruct(node *ir.Node, val reflect.Value, path string) error {
	s, err := d.m.Schema(val.Type())
	if err != nil {
		return err
	}
	for _, f := range s.Fields {
		fv := val.FieldByIndex(f.Index)
		fpath := joinPath(path, f.QName())
		switch f.Role {
		case RoleAttrs:
			if len(node.Attrs) == 0 {
				if f.Required {
					return d.missing(s, f, fpath)
				}
				continue
			}
			if err := d.decodeAttrs(node.Attrs, fv, fpath); err != nil {
				return err
			}
		case RoleCData:
			if len(node.CData) == 0 {
				if f.Required {
					return d.missing(s, f, fpath)
				}
				if fv.Kind() == reflect.Pointer {
					fv.SetZero()
				}
				continue
			}
			decodeCData(node.CData, fv)
		default:
			matches := node.ChildrenNamed(f.QName())
			if len(matches) == 0 {
				if f.Required {
					return d.missing(s, f, fpath)
				}
				switch f.Category {
				case CategoryOptional, CategoryOptionalRepeated, CategoryRaw:
					fv.SetZero()
				}
				continue
			}
			if err := d.decodeField(f, matches, fv, fpath); err != nil {
				return err
			}
		}
	}
	if debug.Decode() {
		d.traceUnknown(s, node, path)
	}
	return nil
}

func (d *decoder) missing(s *StructSchema, f *FieldInfo, fpath string) error {
	return &MissingFieldError{Record: s.TypeName(), Field: f.QName(), FieldPath: fpath}
}

func (d *decoder) traceUnknown(s *StructSchema, node *ir.Node, path string) {
	for _, c := range node.Children {
		if s.Field(c.Name()) == nil {
			debug.Log().Debug("ignoring unknown element", "path", joinPath(path, c.Name()), "record", s.TypeName())
		}
	}
	if s.attrs == nil {
		for _, a := range node.Attrs {
			debug.Log().Debug("ignoring attribute", "path", path, "attr", a.Name, "record", s.TypeName())
		}
	}
}

func (d *decoder) decodeField(f *FieldInfo, matches []*ir.Node, fv reflect.Value, fpath string) error {
	switch f.Category {
	case CategoryRepeated:
		return d.decodeSlice(matches, fv, fpath)
	case CategoryOptionalRepeated:
		slice := reflect.New(fv.Type().Elem())
		if err := d.decodeSlice(matches, slice.Elem(), fpath); err != nil {
			return err
		}
		fv.Set(slice)
		return nil
	default:
		return d.decodeValue(matches[0], fv, fpath)
	}
}

// decodeSlice replaces fv with one element per match, in document order.
func (d *decoder) decodeSlice(matches []*ir.Node, fv reflect.Value, fpath string) error {
	slice := reflect.MakeSlice(fv.Type(), len(matches), len(matches))
	for i, n := range matches {
		if err := d.decodeValue(n, slice.Index(i), fmt.Sprintf("%s[%d]", fpath, i)); err != nil {
			return err
		}
	}
	fv.Set(slice)
	return nil
}

// decodeValue binds a single element to val.
func (d *decoder) decodeValue(node *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	if typ == nodePtrType {
		cp := node.Clone()
		cp.Parent, cp.ParentIndex = nil, 0
		val.Set(reflect.ValueOf(cp))
		return nil
	}
	if val.CanAddr() {
		if c, ok := val.Addr().Interface().(FromXMLer); ok {
			if err := c.FromXML(node); err != nil {
				return &UnmarshalError{FieldPath: path, Message: "FromXML failed", Err: err}
			}
			return nil
		}
	}
	switch {
	case typ.Kind() == reflect.Pointer:
		// an optional scalar with no text is absent
		if isScalarType(typ.Elem()) && node.Text == "" {
			val.SetZero()
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return d.decodeValue(node, val.Elem(), path)
	case isNamespacedType(typ):
		return d.decodeValue(node, val.Field(0), path)
	case isLeafType(typ):
		if err := d.decodeScalar(node.Text, val.Field(0), path); err != nil {
			return err
		}
		if len(node.Attrs) != 0 {
			attrs := make(map[string]string, len(node.Attrs))
			for _, a := range node.Attrs {
				attrs[a.Name] = a.Value
			}
			val.Field(1).Set(reflect.ValueOf(attrs))
		}
		return nil
	case isScalarType(typ):
		return d.decodeScalar(node.Text, val, path)
	case typ.Kind() == reflect.Struct:
		return d.decodeStruct(node, val, path)
	}
	return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported type %s", typ)}
}

func (d *decoder) decodeAttrs(attrs []ir.Attr, fv reflect.Value, fpath string) error {
	mt := fv.Type()
	res := reflect.MakeMapWithSize(mt, len(attrs))
	for _, a := range attrs {
		ev := reflect.New(mt.Elem()).Elem()
		apath := fpath + "@" + a.Name
		if mt.Elem() == anyValueType {
			ev.Set(reflect.ValueOf(NewAny(a.Value)))
		} else if err := d.decodeScalar(a.Value, ev, apath); err != nil {
			return err
		}
		res.SetMapIndex(reflect.ValueOf(a.Name).Convert(mt.Key()), ev)
	}
	fv.Set(res)
	return nil
}

func decodeCData(segs []string, fv reflect.Value) {
	switch fv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(fv.Type(), len(segs), len(segs))
		for i, s := range segs {
			slice.Index(i).SetString(s)
		}
		fv.Set(slice)
	case reflect.Pointer:
		p := reflect.New(fv.Type().Elem())
		p.Elem().SetString(segs[0])
		fv.Set(p)
	default:
		fv.SetString(segs[0])
	}
}

// decodeScalar converts text into val. Empty text leaves val untouched.
func (d *decoder) decodeScalar(text string, val reflect.Value, path string) error {
	if text == "" {
		return nil
	}
	typ := val.Type()
	switch typ {
	case anyValueType:
		val.Set(reflect.ValueOf(NewAny(text)))
		return nil
	case charType:
		r, n := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError || n != len(text) {
			return &ConversionError{FieldPath: path, Raw: text, Target: "character"}
		}
		val.SetInt(int64(r))
		return nil
	}
	if val.CanAddr() {
		if u, ok := val.Addr().Interface().(interface{ UnmarshalText([]byte) error }); ok {
			if err := u.UnmarshalText([]byte(text)); err != nil {
				return &ConversionError{FieldPath: path, Raw: text, Target: typ.String(), Err: err}
			}
			return nil
		}
	}
	switch typ.Kind() {
	case reflect.String:
		val.SetString(text)
	case reflect.Slice:
		val.SetBytes([]byte(text))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, typ.Bits())
		if err != nil {
			return &ConversionError{FieldPath: path, Raw: text, Target: typ.String(), Err: unwrapNum(err)}
		}
		val.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(strings.TrimSpace(text), 10, typ.Bits())
		if err != nil {
			return &ConversionError{FieldPath: path, Raw: text, Target: typ.String(), Err: unwrapNum(err)}
		}
		val.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), typ.Bits())
		if err != nil {
			return &ConversionError{FieldPath: path, Raw: text, Target: typ.String(), Err: unwrapNum(err)}
		}
		val.SetFloat(f)
	case reflect.Bool:
		b, ok := parseBoolText(strings.TrimSpace(text))
		if !ok {
			if d.cfg.BoolPolicy == BoolStrict {
				return &ConversionError{FieldPath: path, Raw: text, Target: "bool"}
			}
			debug.Log().Debug("unrecognized boolean, storing false", "path", path, "raw", text)
		}
		val.SetBool(b)
	default:
		return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported scalar type %s", typ)}
	}
	return nil
}

func unwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

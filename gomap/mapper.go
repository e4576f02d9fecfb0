package gomap

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Mapper holds the field schemas of record types and the mandatory fields
// registered for them. Schemas are derived on first use and cached. A Mapper
// is safe for concurrent use.
type Mapper struct {
	schemas sync.Map // reflect.Type -> *StructSchema

	mu       sync.Mutex
	required map[reflect.Type][]string
}

func NewMapper() *Mapper {
	return &Mapper{required: map[reflect.Type][]string{}}
}

var defaultMapper = NewMapper()

// DefaultMapper returns the Mapper used by the package level functions.
func DefaultMapper() *Mapper {
	return defaultMapper
}

// Require marks fields of the struct type typ as mandatory, in addition to
// those tagged required. Fields are named by Go field name or element name.
func (m *Mapper) Require(typ reflect.Type, fields ...string) error {
	typ = derefType(typ)
	m.mu.Lock()
	defer m.mu.Unlock()
	next := slices.Clone(m.required[typ])
	for _, f := range fields {
		if !slices.Contains(next, f) {
			next = append(next, f)
		}
	}
	// validate before publishing
	s, err := buildSchema(typ, next)
	if err != nil {
		return err
	}
	m.required[typ] = next
	m.schemas.Store(typ, s)
	return nil
}

// Schema returns the field schema of a struct type.
func (m *Mapper) Schema(typ reflect.Type) (*StructSchema, error) {
	if s, ok := m.schemas.Load(typ); ok {
		return s.(*StructSchema), nil
	}
	m.mu.Lock()
	req := slices.Clone(m.required[typ])
	m.mu.Unlock()
	s, err := buildSchema(typ, req)
	if err != nil {
		return nil, err
	}
	actual, _ := m.schemas.LoadOrStore(typ, s)
	return actual.(*StructSchema), nil
}

// Require marks fields of T as mandatory on the default Mapper.
func Require[T any](fields ...string) error {
	return defaultMapper.Require(reflect.TypeFor[T](), fields...)
}

// MustRequire is like Require but panics on error. It suits package level
// registration:
//
//	var _ = gomap.MustRequire[Book]("edition")
func MustRequire[T any](fields ...string) bool {
	if err := Require[T](fields...); err != nil {
		panic(fmt.Sprintf("gomap: %v", err))
	}
	return true
}

// SchemaOf returns the schema of T from the default Mapper.
func SchemaOf[T any]() (*StructSchema, error) {
	return defaultMapper.Schema(derefType(reflect.TypeFor[T]()))
}

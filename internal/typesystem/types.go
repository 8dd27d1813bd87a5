package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/procheck/internal/config"
)

// Type is the interface for all base types in our system.
// Base types never carry a tag themselves; sensitivity lives in Tagged.
type Type interface {
	String() string
	Equal(Type) bool
}

// TCon represents a scalar type constant (e.g. String, Int, Unit).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Equal(other Type) bool {
	o, ok := other.(TCon)
	return ok && o.Name == t.Name
}

// TList represents a sequence type. The tag, if any, sits on the
// element, never on the list itself.
type TList struct {
	Elem Tagged
}

func (t TList) String() string {
	return fmt.Sprintf("%s<%s>", config.ListTypeName, t.Elem.String())
}

func (t TList) Equal(other Type) bool {
	o, ok := other.(TList)
	return ok && o.Elem.Equal(t.Elem)
}

// TMap represents a key/value mapping type. As with TList, tags apply
// only to the key and value positions.
type TMap struct {
	Key   Tagged
	Value Tagged
}

func (t TMap) String() string {
	return fmt.Sprintf("%s<%s, %s>", config.MapTypeName, t.Key.String(), t.Value.String())
}

func (t TMap) Equal(other Type) bool {
	o, ok := other.(TMap)
	return ok && o.Key.Equal(t.Key) && o.Value.Equal(t.Value)
}

// TRecord represents a named record type (e.g. { name: String, token: inproc String }).
// Each field carries its own independent tag; the record as a whole
// never does.
type TRecord struct {
	Name   string // nominal name from the type declaration, "" for structural
	Fields map[string]Tagged
}

func (t TRecord) String() string {
	if t.Name != "" {
		return t.Name
	}
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s: %s", k, t.Fields[k].String()))
	}
	return fmt.Sprintf("{ %s }", strings.Join(fields, ", "))
}

func (t TRecord) Equal(other Type) bool {
	o, ok := other.(TRecord)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	if t.Name != "" || o.Name != "" {
		return t.Name == o.Name
	}
	for k, v := range t.Fields {
		ov, ok := o.Fields[k]
		if !ok || !ov.Equal(v) {
			return false
		}
	}
	return true
}

// FieldNames returns the record's field names in sorted order, for
// deterministic iteration.
func (t TRecord) FieldNames() []string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TFunc represents a function type (e.g. (xproc String) -> Unit).
type TFunc struct {
	Params     []Tagged
	ReturnType Tagged
}

func (t TFunc) String() string {
	params := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.ReturnType.String())
}

func (t TFunc) Equal(other Type) bool {
	o, ok := other.(TFunc)
	if !ok || len(o.Params) != len(t.Params) {
		return false
	}
	for i, p := range t.Params {
		if !o.Params[i].Equal(p) {
			return false
		}
	}
	return o.ReturnType.Equal(t.ReturnType)
}

// IsCollection reports whether t is a sequence or mapping type.
// Collection types are invalid tag targets (tags belong on elements).
func IsCollection(t Type) bool {
	switch t.(type) {
	case TList, TMap:
		return true
	}
	return false
}

// Builtin scalar types.
var (
	StringType = TCon{Name: config.StringTypeName}
	IntType    = TCon{Name: config.IntTypeName}
	UnitType   = TCon{Name: config.UnitTypeName}
)

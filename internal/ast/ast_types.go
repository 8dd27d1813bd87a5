package ast

import (
	"github.com/funvibe/procheck/internal/token"
)

// Type is the interface for syntax-level type expressions. The checker
// lowers these into typesystem values; they carry no semantics of their
// own.
type Type interface {
	typeNode()
	GetToken() token.Token
	String() string
}

// NamedType references a builtin or declared type by name, e.g. String.
type NamedType struct {
	Token token.Token
	Name  string
}

func (nt *NamedType) typeNode()             {}
func (nt *NamedType) GetToken() token.Token { return nt.Token }
func (nt *NamedType) String() string        { return nt.Name }

// ListType represents List<T>.
type ListType struct {
	Token token.Token
	Elem  Type
}

func (lt *ListType) typeNode()             {}
func (lt *ListType) GetToken() token.Token { return lt.Token }
func (lt *ListType) String() string        { return "List<" + lt.Elem.String() + ">" }

// MapType represents Map<K, V>.
type MapType struct {
	Token token.Token
	Key   Type
	Value Type
}

func (mt *MapType) typeNode()             {}
func (mt *MapType) GetToken() token.Token { return mt.Token }
func (mt *MapType) String() string {
	return "Map<" + mt.Key.String() + ", " + mt.Value.String() + ">"
}

// TaggedType represents a tag-annotated type, e.g. inproc String.
// Tag is "inproc" or "xproc".
type TaggedType struct {
	Token token.Token // The 'inproc' or 'xproc' token
	Tag   string
	Base  Type
}

func (tt *TaggedType) typeNode()             {}
func (tt *TaggedType) GetToken() token.Token { return tt.Token }
func (tt *TaggedType) String() string        { return tt.Tag + " " + tt.Base.String() }

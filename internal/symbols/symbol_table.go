package symbols

import (
	"github.com/funvibe/procheck/internal/token"
	"github.com/funvibe/procheck/internal/typesystem"
)

type SymbolKind int

const (
	BindingSymbol SymbolKind = iota
	ParameterSymbol
	FunctionSymbol
	TypeSymbol
)

type ScopeType int

const (
	ScopeGlobal ScopeType = iota
	ScopeFunction
	ScopeBlock
)

// Symbol is a named slot with its declared tagged type. The declared
// tag is fixed at definition; re-declaration is required to change it.
type Symbol struct {
	Name            string
	Type            typesystem.Tagged
	Kind            SymbolKind
	DefinitionToken token.Token
	DefinitionFile  string
}

// SymbolTable is a lexically scoped registry of bindings and declared
// record types. One table per compilation unit; tables share no state.
type SymbolTable struct {
	scopeType ScopeType
	parent    *SymbolTable
	symbols   map[string]*Symbol
	types     map[string]typesystem.TRecord
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopeType: ScopeGlobal,
		symbols:   make(map[string]*Symbol),
		types:     make(map[string]typesystem.TRecord),
	}
}

// NewEnclosed creates a child scope.
func (st *SymbolTable) NewEnclosed(scopeType ScopeType) *SymbolTable {
	return &SymbolTable{
		scopeType: scopeType,
		parent:    st,
		symbols:   make(map[string]*Symbol),
		types:     make(map[string]typesystem.TRecord),
	}
}

func (st *SymbolTable) ScopeType() ScopeType { return st.scopeType }

// Define registers a symbol in the current scope, shadowing any outer
// definition of the same name. Returns false if the name is already
// defined in this scope.
func (st *SymbolTable) Define(sym *Symbol) bool {
	if _, exists := st.symbols[sym.Name]; exists {
		return false
	}
	st.symbols[sym.Name] = sym
	return true
}

// Resolve looks a name up through enclosing scopes.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.parent != nil {
		return st.parent.Resolve(name)
	}
	return nil, false
}

// DefineType registers a named record type. Returns false on redefinition.
func (st *SymbolTable) DefineType(name string, record typesystem.TRecord) bool {
	if _, exists := st.types[name]; exists {
		return false
	}
	st.types[name] = record
	return true
}

// ResolveType looks a record type name up through enclosing scopes.
func (st *SymbolTable) ResolveType(name string) (typesystem.TRecord, bool) {
	if rec, ok := st.types[name]; ok {
		return rec, true
	}
	if st.parent != nil {
		return st.parent.ResolveType(name)
	}
	return typesystem.TRecord{}, false
}

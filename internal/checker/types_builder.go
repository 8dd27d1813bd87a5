package checker

import (
	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/config"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/symbols"
	"github.com/funvibe/procheck/internal/typesystem"
)

// buildType lowers a syntax-level type expression into a typesystem
// value. Tag placement is validated here, before anything reaches the
// assignability checker: tagging a collection or a whole record is a
// construction-time error.
func (w *walker) buildType(t ast.Type, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	switch n := t.(type) {
	case *ast.NamedType:
		base, ok := w.buildBaseType(n, st)
		if !ok {
			return typesystem.Tagged{}, false
		}
		return typesystem.Untagged(base), true

	case *ast.ListType:
		elem, ok := w.buildType(n.Elem, st)
		if !ok {
			return typesystem.Tagged{}, false
		}
		return typesystem.Untagged(typesystem.TList{Elem: elem}), true

	case *ast.MapType:
		key, ok := w.buildType(n.Key, st)
		if !ok {
			return typesystem.Tagged{}, false
		}
		value, ok := w.buildType(n.Value, st)
		if !ok {
			return typesystem.Tagged{}, false
		}
		return typesystem.Untagged(typesystem.TMap{Key: key, Value: value}), true

	case *ast.TaggedType:
		inner, ok := w.buildType(n.Base, st)
		if !ok {
			return typesystem.Tagged{}, false
		}
		if inner.Tag != typesystem.TagNone {
			w.errorf(diagnostics.ErrP003, n.GetToken(), "type carries more than one tag")
			return typesystem.Tagged{}, false
		}
		tag := typesystem.TagXProc
		if n.Tag == config.InProcKeyword {
			tag = typesystem.TagInProc
		}
		tagged, err := typesystem.NewTagged(inner.Base, tag)
		if err != nil {
			w.errorf(diagnostics.ErrT002, n.GetToken(), "%s", err.Error())
			return typesystem.Tagged{}, false
		}
		return tagged, true
	}
	return typesystem.Tagged{}, false
}

func (w *walker) buildBaseType(n *ast.NamedType, st *symbols.SymbolTable) (typesystem.Type, bool) {
	switch n.Name {
	case config.StringTypeName:
		return typesystem.StringType, true
	case config.IntTypeName:
		return typesystem.IntType, true
	case config.UnitTypeName:
		return typesystem.UnitType, true
	}
	if record, ok := st.ResolveType(n.Name); ok {
		return record, true
	}
	w.errorf(diagnostics.ErrT004, n.GetToken(), "unknown type %s", n.Name)
	return nil, false
}

// buildRecordType lowers a type declaration into a nominal TRecord.
func (w *walker) buildRecordType(n *ast.TypeStatement) typesystem.TRecord {
	fields := make(map[string]typesystem.Tagged, len(n.Fields))
	for _, field := range n.Fields {
		ft, ok := w.buildType(field.Type, w.symbolTable)
		if !ok {
			continue
		}
		if _, dup := fields[field.Name.Value]; dup {
			w.errorf(diagnostics.ErrT004, field.Token, "duplicate field %s", field.Name.Value)
			continue
		}
		fields[field.Name.Value] = ft
	}
	return typesystem.TRecord{Name: n.Name.Value, Fields: fields}
}

// buildFunctionType lowers a function signature. Parameter and return
// slots are bindings; call sites check arguments against them exactly
// like assignments.
func (w *walker) buildFunctionType(n *ast.FunctionStatement) typesystem.TFunc {
	params := make([]typesystem.Tagged, 0, len(n.Parameters))
	for _, param := range n.Parameters {
		pt, ok := w.buildType(param.Type, w.symbolTable)
		if !ok {
			pt = typesystem.Untagged(typesystem.UnitType)
		}
		params = append(params, pt)
	}

	ret := typesystem.Untagged(typesystem.UnitType)
	if n.ReturnType != nil {
		if rt, ok := w.buildType(n.ReturnType, w.symbolTable); ok {
			ret = rt
		}
	}
	return typesystem.TFunc{Params: params, ReturnType: ret}
}

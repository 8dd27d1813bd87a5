package checker

import (
	"fmt"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/symbols"
	"github.com/funvibe/procheck/internal/typesystem"
)

// inferExpression is the propagation engine: it resolves the tagged
// type of an expression bottom-up, recording the resolved tag per node.
// It returns ok=false when the expression's type could not be
// established at all; tag poisoning errors never make it return false,
// since tag propagation runs alongside ordinary typing rather than
// replacing it.
func (w *walker) inferExpression(expr ast.Expression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	result, ok := w.inferExpressionInner(expr, st)
	if ok {
		w.types[expr] = result
		w.tags[expr] = w.resolveTag(result)
	}
	return result, ok
}

// resolveTag yields the tag attached to a resolved type. Aggregates and
// collections resolve to TagNone: their sensitivity lives per field or
// per element, never on the value as a whole.
func (w *walker) resolveTag(t typesystem.Tagged) typesystem.Tag {
	switch t.Base.(type) {
	case typesystem.TRecord, typesystem.TList, typesystem.TMap:
		return typesystem.TagNone
	}
	return t.Tag
}

func (w *walker) inferExpressionInner(expr ast.Expression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	switch n := expr.(type) {
	case *ast.Identifier:
		sym, ok := st.Resolve(n.Value)
		if !ok {
			w.errorf(diagnostics.ErrT004, n.GetToken(), "undefined: %s", n.Value)
			return typesystem.Tagged{}, false
		}
		// A bare binding reference carries the binding's declared tag.
		return sym.Type, true

	case *ast.StringLiteral:
		// Untagged literals check as xproc.
		return typesystem.Untagged(typesystem.StringType), true

	case *ast.IntegerLiteral:
		return typesystem.Untagged(typesystem.IntType), true

	case *ast.TemplateLiteral:
		return w.inferTemplate(n, st)

	case *ast.InfixExpression:
		return w.inferInfix(n, st)

	case *ast.CallExpression:
		return w.inferCall(n, st)

	case *ast.RecordLiteral:
		return w.inferRecordLiteral(n, st)

	case *ast.ListLiteral:
		return w.inferListLiteral(n, st)

	case *ast.IndexExpression:
		return w.inferIndex(n, st)

	case *ast.MemberExpression:
		return w.inferMember(n, st)
	}
	w.errorf(diagnostics.ErrT004, expr.GetToken(), "unsupported expression")
	return typesystem.Tagged{}, false
}

// inferTemplate resolves a template string. Interpolation constructs a
// new string out of every hole, so the result combines the tags of all
// holes: one inproc hole poisons the whole string.
func (w *walker) inferTemplate(n *ast.TemplateLiteral, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	tag := typesystem.TagXProc
	for _, hole := range n.Holes {
		holeType, ok := w.inferExpression(hole, st)
		if !ok {
			continue
		}
		tag = typesystem.Combine(tag, w.operandTag(holeType))
	}
	return typesystem.Tagged{Base: typesystem.StringType, Tag: tag}, true
}

// inferInfix resolves a binary operation. The result tag is the combine
// of the operand tags regardless of whether the bases line up: base
// mismatches are reported separately and never mask tag propagation.
func (w *walker) inferInfix(n *ast.InfixExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	left, lok := w.inferExpression(n.Left, st)
	right, rok := w.inferExpression(n.Right, st)
	if !lok && !rok {
		return typesystem.Tagged{}, false
	}

	tag := typesystem.TagXProc
	if lok {
		tag = typesystem.Combine(tag, w.operandTag(left))
	}
	if rok {
		tag = typesystem.Combine(tag, w.operandTag(right))
	}

	var base typesystem.Type
	switch n.Operator {
	case "+":
		base = typesystem.IntType
	case "++":
		base = typesystem.StringType
	default:
		w.errorf(diagnostics.ErrT004, n.GetToken(), "unknown operator %s", n.Operator)
		return typesystem.Tagged{}, false
	}

	if lok && !typesystem.CompatibleBase(left.Base, base) {
		w.errorf(diagnostics.ErrT003, n.Left.GetToken(),
			"operator %s requires %s operands, got %s", n.Operator, base.String(), left.Base.String())
	}
	if rok && !typesystem.CompatibleBase(right.Base, base) {
		w.errorf(diagnostics.ErrT003, n.Right.GetToken(),
			"operator %s requires %s operands, got %s", n.Operator, base.String(), right.Base.String())
	}
	return typesystem.Tagged{Base: base, Tag: tag}, true
}

// operandTag is the tag an expression contributes when it participates
// in a combining operation. Scalar values contribute their own tag;
// aggregates contribute the combine of their reachable parts, since
// folding an aggregate into a scalar (concatenation, interpolation)
// exposes everything inside it.
func (w *walker) operandTag(t typesystem.Tagged) typesystem.Tag {
	switch base := t.Base.(type) {
	case typesystem.TRecord:
		tag := typesystem.TagXProc
		for _, name := range base.FieldNames() {
			tag = typesystem.Combine(tag, w.operandTag(base.Fields[name]))
		}
		return tag
	case typesystem.TList:
		return w.operandTag(base.Elem)
	case typesystem.TMap:
		return typesystem.Combine(w.operandTag(base.Key), w.operandTag(base.Value))
	}
	return t.Tag.Normalize()
}

func (w *walker) inferCall(n *ast.CallExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	switch {
	case w.isRevealCall(n.Function.Value):
		return w.inferReveal(n, st)
	case w.isSerializeCall(n.Function.Value):
		return w.inferSerialize(n, st)
	}

	sym, ok := st.Resolve(n.Function.Value)
	if !ok {
		w.errorf(diagnostics.ErrT004, n.Function.GetToken(), "undefined: %s", n.Function.Value)
		return typesystem.Tagged{}, false
	}
	fnType, ok := sym.Type.Base.(typesystem.TFunc)
	if !ok {
		w.errorf(diagnostics.ErrT004, n.Function.GetToken(), "%s is not a function", n.Function.Value)
		return typesystem.Tagged{}, false
	}

	if len(n.Arguments) != len(fnType.Params) {
		w.errorf(diagnostics.ErrT004, n.GetToken(),
			"%s expects %d arguments, got %d", n.Function.Value, len(fnType.Params), len(n.Arguments))
	}

	// Each argument is an assignment into the corresponding parameter
	// binding; a parameter declared xproc therefore rejects an inproc
	// argument the function could leak.
	for i, arg := range n.Arguments {
		if i >= len(fnType.Params) {
			break
		}
		argType, ok := w.inferExpression(arg, st)
		if !ok {
			continue
		}
		w.checkAssignable(argType, fnType.Params[i], arg.GetToken(),
			fmt.Sprintf("argument %d of %s", i+1, n.Function.Value))
	}
	return fnType.ReturnType, true
}

func (w *walker) inferRecordLiteral(n *ast.RecordLiteral, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	record, ok := st.ResolveType(n.TypeName.Value)
	if !ok {
		w.errorf(diagnostics.ErrT004, n.GetToken(), "unknown type %s", n.TypeName.Value)
		return typesystem.Tagged{}, false
	}

	seen := make(map[string]bool, len(n.Fields))
	for _, field := range n.Fields {
		declared, exists := record.Fields[field.Name.Value]
		if !exists {
			w.errorf(diagnostics.ErrT004, field.Token,
				"type %s has no field %s", record.Name, field.Name.Value)
			continue
		}
		if seen[field.Name.Value] {
			w.errorf(diagnostics.ErrT004, field.Token, "duplicate field %s", field.Name.Value)
			continue
		}
		seen[field.Name.Value] = true

		value, ok := w.inferExpression(field.Value, st)
		if !ok {
			continue
		}
		// Field initialization is an assignment into the field binding.
		w.checkAssignable(value, declared, field.Value.GetToken(),
			fmt.Sprintf("field %s of %s", field.Name.Value, record.Name))
	}
	for _, name := range record.FieldNames() {
		if !seen[name] {
			w.errorf(diagnostics.ErrT004, n.GetToken(),
				"missing field %s in %s literal", name, record.Name)
		}
	}

	// The record value carries no tag of its own; each field keeps its
	// declared tag for downstream access and serialization.
	return typesystem.Untagged(record), true
}

func (w *walker) inferListLiteral(n *ast.ListLiteral, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	if len(n.Elements) == 0 {
		// Element type of an empty literal is unknowable without an
		// annotation; default to String elements.
		return typesystem.Untagged(typesystem.TList{
			Elem: typesystem.Untagged(typesystem.StringType),
		}), true
	}

	first, ok := w.inferExpression(n.Elements[0], st)
	if !ok {
		return typesystem.Tagged{}, false
	}
	elemTag := first.Tag.Normalize()
	for _, elem := range n.Elements[1:] {
		et, ok := w.inferExpression(elem, st)
		if !ok {
			continue
		}
		if !typesystem.CompatibleBase(et.Base, first.Base) {
			w.errorf(diagnostics.ErrT003, elem.GetToken(),
				"list element type %s does not match %s", et.Base.String(), first.Base.String())
			continue
		}
		// A single inproc element makes the whole element type inproc.
		elemTag = typesystem.Combine(elemTag, et.Tag)
	}
	return typesystem.Untagged(typesystem.TList{
		Elem: typesystem.Tagged{Base: first.Base, Tag: elemTag},
	}), true
}

func (w *walker) inferIndex(n *ast.IndexExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	left, ok := w.inferExpression(n.Left, st)
	if !ok {
		return typesystem.Tagged{}, false
	}
	index, iok := w.inferExpression(n.Index, st)

	switch base := left.Base.(type) {
	case typesystem.TList:
		if iok && !typesystem.CompatibleBase(index.Base, typesystem.IntType) {
			w.errorf(diagnostics.ErrT003, n.Index.GetToken(),
				"list index must be %s, got %s", typesystem.IntType.String(), index.Base.String())
		}
		// Element access yields the declared element tag.
		return base.Elem, true
	case typesystem.TMap:
		if iok && !typesystem.CompatibleBase(index.Base, base.Key.Base) {
			w.errorf(diagnostics.ErrT003, n.Index.GetToken(),
				"map key must be %s, got %s", base.Key.Base.String(), index.Base.String())
		}
		return base.Value, true
	}
	w.errorf(diagnostics.ErrT003, n.GetToken(), "type %s is not indexable", left.Base.String())
	return typesystem.Tagged{}, false
}

func (w *walker) inferMember(n *ast.MemberExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	left, ok := w.inferExpression(n.Left, st)
	if !ok {
		return typesystem.Tagged{}, false
	}
	record, isRecord := left.Base.(typesystem.TRecord)
	if !isRecord {
		w.errorf(diagnostics.ErrT003, n.GetToken(),
			"type %s has no fields", left.Base.String())
		return typesystem.Tagged{}, false
	}
	fieldType, exists := record.Fields[n.Member.Value]
	if !exists {
		w.errorf(diagnostics.ErrT004, n.Member.GetToken(),
			"type %s has no field %s", record.Name, n.Member.Value)
		return typesystem.Tagged{}, false
	}
	// Field access yields the field's declared tag.
	return fieldType, true
}

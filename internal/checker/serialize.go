package checker

import (
	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/config"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/symbols"
	"github.com/funvibe/procheck/internal/typesystem"
)

func (w *walker) isSerializeCall(name string) bool {
	if name == config.SerializeFuncName {
		return true
	}
	for _, extra := range w.opts.Serializers {
		if name == extra {
			return true
		}
	}
	return false
}

// inferSerialize is the serialization boundary adapter. Serialization
// synthesizes a fresh aggregate (a sequence of text units) out of a
// value whose internal tag structure would otherwise be lost, so the
// simple propagation rules cannot cover it: the output element type is
// re-tagged inproc whenever any field reachable through the input's own
// type is inproc, and stays xproc otherwise.
//
// Only statically known call sites are handled. A reflection-based
// runtime serializer cannot recover erased tags; that gap needs a
// persisted metadata side-channel this checker does not provide.
func (w *walker) inferSerialize(n *ast.CallExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	if len(n.Arguments) != 1 {
		w.errorf(diagnostics.ErrT004, n.GetToken(),
			"%s expects exactly one argument, got %d", n.Function.Value, len(n.Arguments))
		return typesystem.Tagged{}, false
	}

	arg, ok := w.inferExpression(n.Arguments[0], st)
	if !ok {
		return typesystem.Tagged{}, false
	}

	elemTag := w.operandTag(arg)
	return typesystem.Untagged(typesystem.TList{
		Elem: typesystem.Tagged{Base: typesystem.StringType, Tag: elemTag},
	}), true
}

package checker

import (
	"github.com/google/uuid"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/config"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/symbols"
	"github.com/funvibe/procheck/internal/typesystem"
)

const revealName = config.RevealFuncName

// RevealSite records one explicit inproc -> xproc downgrade. Sites are
// immutable once created and exist purely for audit and reporting; they
// feed no further checking.
type RevealSite struct {
	ID     string
	File   string
	Line   int
	Column int
	Source string // tagged type before the downgrade
	Result string // tagged type after the downgrade
}

func (w *walker) isRevealCall(name string) bool {
	if name == revealName {
		return true
	}
	for _, alias := range w.opts.RevealAliases {
		if name == alias {
			return true
		}
	}
	return false
}

// inferReveal handles the one sanctioned downgrade. reveal is an
// identity on the underlying value; all it does is swap the tag, and
// every call leaves a greppable, auditable site behind. Revealing a
// value that is not inproc is harmless dead code and only warns.
func (w *walker) inferReveal(n *ast.CallExpression, st *symbols.SymbolTable) (typesystem.Tagged, bool) {
	if len(n.Arguments) != 1 {
		w.errorf(diagnostics.ErrT004, n.GetToken(),
			"%s expects exactly one argument, got %d", n.Function.Value, len(n.Arguments))
		return typesystem.Tagged{}, false
	}

	arg, ok := w.inferExpression(n.Arguments[0], st)
	if !ok {
		return typesystem.Tagged{}, false
	}

	if arg.Tag.Normalize() != typesystem.TagInProc {
		w.errorf(diagnostics.WarnT001, n.GetToken(),
			"redundant %s: value is already %s", n.Function.Value, typesystem.TagXProc.String())
		return arg.WithTag(typesystem.TagXProc), true
	}

	result := arg.WithTag(typesystem.TagXProc)
	tok := n.GetToken()
	w.reveals = append(w.reveals, RevealSite{
		ID:     uuid.NewString(),
		File:   w.currentFile,
		Line:   tok.Line,
		Column: tok.Column,
		Source: arg.String(),
		Result: result.String(),
	})
	return result, true
}

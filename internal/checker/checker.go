package checker

import (
	"fmt"
	"sort"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/symbols"
	"github.com/funvibe/procheck/internal/token"
	"github.com/funvibe/procheck/internal/typesystem"
)

// Options configures a check run.
type Options struct {
	// StrictProcessBoundaries activates tag checking. When false the
	// whole check is a no-op pass-through: no diagnostics, no tag
	// resolution, identical to the fully erased behavior.
	StrictProcessBoundaries bool

	// Serializers lists call names treated as serialization boundaries
	// in addition to the builtin one.
	Serializers []string

	// RevealAliases lists call names treated as reveal in addition to
	// the builtin one.
	RevealAliases []string
}

// Result is the verdict for one compilation unit.
type Result struct {
	OK          bool
	Diagnostics []*diagnostics.DiagnosticError

	// Tags holds the resolved tag for every expression node, for the
	// host's erasure pass. Aggregate-valued nodes resolve to TagNone:
	// records and collections never carry a tag of their own.
	Tags map[ast.Node]typesystem.Tag

	// Types holds the full tagged type per expression node.
	Types map[ast.Node]typesystem.Tagged

	// Reveals records every explicit downgrade site, for audit.
	Reveals []RevealSite
}

// Checker performs process-boundary tag analysis on a parsed program.
// A Checker checks one unit at a time and holds no state across runs;
// callers that want parallelism use one Checker per unit.
type Checker struct {
	opts Options
}

func New(opts Options) *Checker {
	return &Checker{opts: opts}
}

// walker carries the mutable state of a single check run.
type walker struct {
	opts        Options
	symbolTable *symbols.SymbolTable
	errorSet    map[string]*diagnostics.DiagnosticError // key "line:col:code" for dedup
	tags        map[ast.Node]typesystem.Tag
	types       map[ast.Node]typesystem.Tagged
	reveals     []RevealSite
	currentFile string

	// returnType is the declared return slot of the enclosing function
	// body, nil at top level.
	returnType *typesystem.Tagged
}

// Check runs the analysis over one program. The walk is a single
// bottom-up post-order pass per expression tree, so every composite
// node sees its children's tags before resolving its own.
func (c *Checker) Check(program *ast.Program) *Result {
	if !c.opts.StrictProcessBoundaries {
		// Full bypass: every operation is a pass-through.
		return &Result{OK: true}
	}

	w := &walker{
		opts:        c.opts,
		symbolTable: symbols.NewSymbolTable(),
		errorSet:    make(map[string]*diagnostics.DiagnosticError),
		tags:        make(map[ast.Node]typesystem.Tag),
		types:       make(map[ast.Node]typesystem.Tagged),
		currentFile: program.File,
	}

	// Pass 1: type declarations and function signatures, so that bodies
	// may refer to anything declared in the unit.
	w.collectDeclarations(program)

	// Pass 2: bodies and top-level statements.
	for _, stmt := range program.Statements {
		w.checkStatement(stmt, w.symbolTable)
	}

	diags := w.sortedErrors()
	return &Result{
		OK:          !diagnostics.HasErrors(diags),
		Diagnostics: diags,
		Tags:        w.tags,
		Types:       w.types,
		Reveals:     w.reveals,
	}
}

// addError records a diagnostic, deduplicating by position and code.
func (w *walker) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" && w.currentFile != "" {
		err.File = w.currentFile
	}
	key := fmt.Sprintf("%d:%d:%s", err.Token.Line, err.Token.Column, err.Code)
	w.errorSet[key] = err
}

func (w *walker) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	w.addError(diagnostics.NewError(code, tok, fmt.Sprintf(format, args...)))
}

// sortedErrors returns all unique diagnostics sorted by position.
func (w *walker) sortedErrors() []*diagnostics.DiagnosticError {
	result := make([]*diagnostics.DiagnosticError, 0, len(w.errorSet))
	for _, err := range w.errorSet {
		result = append(result, err)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		return result[i].Token.Column < result[j].Token.Column
	})
	return result
}

func (w *walker) collectDeclarations(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch n := stmt.(type) {
		case *ast.TypeStatement:
			record := w.buildRecordType(n)
			if !w.symbolTable.DefineType(n.Name.Value, record) {
				w.errorf(diagnostics.ErrT004, n.GetToken(), "type %s is already declared", n.Name.Value)
			}
		case *ast.FunctionStatement:
			fnType := w.buildFunctionType(n)
			ok := w.symbolTable.Define(&symbols.Symbol{
				Name:            n.Name.Value,
				Type:            typesystem.Untagged(fnType),
				Kind:            symbols.FunctionSymbol,
				DefinitionToken: n.GetToken(),
				DefinitionFile:  w.currentFile,
			})
			if !ok {
				w.errorf(diagnostics.ErrT004, n.GetToken(), "function %s is already declared", n.Name.Value)
			}
		}
	}
}

func (w *walker) checkStatement(stmt ast.Statement, st *symbols.SymbolTable) {
	switch n := stmt.(type) {
	case *ast.LetStatement:
		w.checkLetStatement(n, st)
	case *ast.FunctionStatement:
		w.checkFunctionBody(n, st)
	case *ast.TypeStatement:
		// Handled in the declaration pass.
	case *ast.ReturnStatement:
		w.checkReturnStatement(n, st)
	case *ast.ExpressionStatement:
		w.inferExpression(n.Expression, st)
	case *ast.BlockStatement:
		inner := st.NewEnclosed(symbols.ScopeBlock)
		for _, s := range n.Statements {
			w.checkStatement(s, inner)
		}
	}
}

func (w *walker) checkLetStatement(n *ast.LetStatement, st *symbols.SymbolTable) {
	value, ok := w.inferExpression(n.Value, st)
	declared := value

	if n.TypeAnnotation != nil {
		annotated, built := w.buildType(n.TypeAnnotation, st)
		if !built {
			return
		}
		declared = annotated
		if ok {
			w.checkAssignable(value, declared, n.Value.GetToken(),
				fmt.Sprintf("binding %s", n.Name.Value))
		}
	} else if !ok {
		return
	}

	defined := st.Define(&symbols.Symbol{
		Name:            n.Name.Value,
		Type:            declared,
		Kind:            symbols.BindingSymbol,
		DefinitionToken: n.GetToken(),
		DefinitionFile:  w.currentFile,
	})
	if !defined {
		w.errorf(diagnostics.ErrT004, n.GetToken(), "%s is already declared in this scope", n.Name.Value)
	}
}

func (w *walker) checkFunctionBody(n *ast.FunctionStatement, st *symbols.SymbolTable) {
	scope := st.NewEnclosed(symbols.ScopeFunction)
	for _, param := range n.Parameters {
		paramType, ok := w.buildType(param.Type, st)
		if !ok {
			continue
		}
		defined := scope.Define(&symbols.Symbol{
			Name:            param.Name.Value,
			Type:            paramType,
			Kind:            symbols.ParameterSymbol,
			DefinitionToken: param.GetToken(),
			DefinitionFile:  w.currentFile,
		})
		if !defined {
			w.errorf(diagnostics.ErrT004, param.GetToken(), "duplicate parameter %s", param.Name.Value)
		}
	}

	retType := typesystem.Untagged(typesystem.UnitType)
	if n.ReturnType != nil {
		if built, ok := w.buildType(n.ReturnType, st); ok {
			retType = built
		}
	}

	prevReturn := w.returnType
	w.returnType = &retType
	for _, s := range n.Body.Statements {
		w.checkStatement(s, scope)
	}
	w.returnType = prevReturn
}

func (w *walker) checkReturnStatement(n *ast.ReturnStatement, st *symbols.SymbolTable) {
	if w.returnType == nil {
		w.errorf(diagnostics.ErrT004, n.GetToken(), "return outside of function body")
		return
	}
	if n.Value == nil {
		if !w.returnType.Base.Equal(typesystem.UnitType) {
			w.errorf(diagnostics.ErrT003, n.GetToken(),
				"missing return value; function returns %s", w.returnType.String())
		}
		return
	}
	value, ok := w.inferExpression(n.Value, st)
	if ok {
		// Return slots are checked exactly like assignments.
		w.checkAssignable(value, *w.returnType, n.Value.GetToken(), "return value")
	}
}

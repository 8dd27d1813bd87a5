package checker_test

import (
	"testing"

	"github.com/funvibe/procheck/internal/ast"
	"github.com/funvibe/procheck/internal/checker"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/lexer"
	"github.com/funvibe/procheck/internal/parser"
	"github.com/funvibe/procheck/internal/pipeline"
	"github.com/funvibe/procheck/internal/typesystem"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "test.xp"
	stream := lexer.NewTokenStream(lexer.New(input))
	program := parser.New(stream, ctx).ParseProgram()
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	return program
}

func check(t *testing.T, input string) *checker.Result {
	t.Helper()
	program := parseProgram(t, input)
	return checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
}

func codes(result *checker.Result) []diagnostics.ErrorCode {
	out := make([]diagnostics.ErrorCode, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(result *checker.Result, code diagnostics.ErrorCode) bool {
	for _, d := range result.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}

const sendPrelude = `fun send(msg: xproc String) -> Unit { }
`

// Scenario A: passing an inproc binding to an xproc parameter.
func TestInprocArgumentRejected(t *testing.T) {
	result := check(t, sendPrelude+`let x: inproc String = "secret"
send(x)
`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT001) {
		t.Errorf("want T001, got %v", codes(result))
	}
}

// Scenario B: the same call wrapped in reveal passes and records a site.
func TestRevealAllowsTheFlow(t *testing.T) {
	result := check(t, sendPrelude+`let x: inproc String = "secret"
send(reveal(x))
`)
	if !result.OK {
		t.Fatalf("check failed: %v", codes(result))
	}
	if len(result.Reveals) != 1 {
		t.Fatalf("got %d reveal sites, want 1", len(result.Reveals))
	}
	site := result.Reveals[0]
	if site.Line != 3 {
		t.Errorf("site line = %d, want 3", site.Line)
	}
	if site.Source != "inproc String" || site.Result != "xproc String" {
		t.Errorf("site = %s -> %s", site.Source, site.Result)
	}
	if site.ID == "" {
		t.Error("site has no id")
	}
}

// Scenario C: one inproc operand poisons the whole expression.
func TestConcatPoisoning(t *testing.T) {
	result := check(t, `let a: inproc String = "s1"
let b: xproc String = "s2"
let c = a ++ b
`)
	if !result.OK {
		t.Fatalf("check failed: %v", codes(result))
	}

	program := parseProgram(t, `let a: inproc String = "s1"
let b: xproc String = "s2"
let c = a ++ b
`)
	result = checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	value := program.Statements[2].(*ast.LetStatement).Value
	if result.Tags[value] != typesystem.TagInProc {
		t.Errorf("c resolves to %v, want TagInProc", result.Tags[value])
	}
}

// Scenario D: serializing a record with an inproc field taints the output.
func TestSerializationBoundary(t *testing.T) {
	input := `type Creds = { name: xproc String, token: inproc String }
let h: xproc String = "alice"
let s: inproc String = "hunter2"
let c = Creds{name: h, token: s}
let out = serialize(c)
`
	program := parseProgram(t, input)
	result := checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	if !result.OK {
		t.Fatalf("check failed: %v", codes(result))
	}

	value := program.Statements[4].(*ast.LetStatement).Value
	out, ok := result.Types[value]
	if !ok {
		t.Fatal("no resolved type for serialize call")
	}
	list, ok := out.Base.(typesystem.TList)
	if !ok {
		t.Fatalf("serialize result base is %T, want TList", out.Base)
	}
	if list.Elem.Tag != typesystem.TagInProc {
		t.Errorf("element tag = %v, want TagInProc", list.Elem.Tag)
	}
}

// A fully xproc record serializes to xproc output.
func TestSerializationCleanInput(t *testing.T) {
	input := `type Host = { name: xproc String }
let h = Host{name: "db.local"}
let out = serialize(h)
`
	program := parseProgram(t, input)
	result := checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	if !result.OK {
		t.Fatalf("check failed: %v", codes(result))
	}
	value := program.Statements[2].(*ast.LetStatement).Value
	list := result.Types[value].Base.(typesystem.TList)
	if list.Elem.Tag.Normalize() != typesystem.TagXProc {
		t.Errorf("element tag = %v, want xproc", list.Elem.Tag)
	}
}

// Scenario E: strict=false bypasses everything.
func TestStrictOffIsPassThrough(t *testing.T) {
	program := parseProgram(t, sendPrelude+`let x: inproc String = "secret"
send(x)
let xs: inproc List<String> = []
`)
	result := checker.New(checker.Options{StrictProcessBoundaries: false}).Check(program)
	if !result.OK {
		t.Error("bypass mode must pass")
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("bypass mode produced diagnostics: %v", codes(result))
	}
}

func TestTaggedCollectionRejected(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"inproc list", `let xs: inproc List<String> = []`},
		{"xproc list", `let xs: xproc List<String> = []`},
		{"inproc map", `fun f(m: inproc Map<String, String>) -> Unit { }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := check(t, tt.input)
			if !hasCode(result, diagnostics.ErrT002) {
				t.Errorf("want T002, got %v", codes(result))
			}
		})
	}
}

func TestRedundantRevealWarns(t *testing.T) {
	result := check(t, `let x: xproc String = "fine"
let y = reveal(x)
`)
	if !result.OK {
		t.Fatalf("redundant reveal must not fail the check: %v", codes(result))
	}
	if !hasCode(result, diagnostics.WarnT001) {
		t.Errorf("want W001, got %v", codes(result))
	}
	if len(result.Reveals) != 0 {
		t.Errorf("redundant reveal recorded %d sites", len(result.Reveals))
	}
}

// Re-wrapping a revealed value as inproc and revealing again checks
// exactly like the first reveal: no hidden state.
func TestRevealIdempotence(t *testing.T) {
	input := `let x: inproc String = "s"
let y: inproc String = reveal(x)
let z = reveal(y)
`
	first := check(t, input)
	if !first.OK {
		t.Fatalf("check failed: %v", codes(first))
	}
	if len(first.Reveals) != 2 {
		t.Fatalf("got %d reveal sites, want 2", len(first.Reveals))
	}

	second := check(t, input)
	if second.OK != first.OK || len(second.Reveals) != len(first.Reveals) ||
		len(second.Diagnostics) != len(first.Diagnostics) {
		t.Error("second check differs from the first")
	}
}

func TestTemplatePoisoning(t *testing.T) {
	result := check(t, sendPrelude+`let secret: inproc String = "k"
let msg = "token is ${secret}"
send(msg)
`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT001) {
		t.Errorf("want T001, got %v", codes(result))
	}
}

func TestElementAccessCarriesDeclaredTag(t *testing.T) {
	result := check(t, sendPrelude+`let s: inproc String = "k"
let xs = [s, "a"]
send(xs[0])
`)
	if result.OK {
		t.Fatal("check should fail: element access yields inproc")
	}
	if !hasCode(result, diagnostics.ErrT001) {
		t.Errorf("want T001, got %v", codes(result))
	}
}

func TestMemberAccessCarriesFieldTag(t *testing.T) {
	result := check(t, sendPrelude+`type Creds = { name: xproc String, token: inproc String }
let c = Creds{name: "alice", token: "hunter2"}
send(c.name)
send(c.token)
`)
	if result.OK {
		t.Fatal("check should fail on c.token")
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diagnostics.ErrT001 {
		t.Errorf("want exactly one T001, got %v", codes(result))
	}
}

func TestRecordFieldInitChecked(t *testing.T) {
	// An inproc value cannot initialize an xproc field.
	result := check(t, `type Host = { name: xproc String }
let s: inproc String = "k"
let h = Host{name: s}
`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT001) {
		t.Errorf("want T001, got %v", codes(result))
	}

	// The reverse widening is fine.
	result = check(t, `type Vault = { token: inproc String }
let v = Vault{token: "plain"}
`)
	if !result.OK {
		t.Errorf("xproc into inproc field must pass: %v", codes(result))
	}
}

func TestReturnCheckedLikeAssignment(t *testing.T) {
	result := check(t, `fun leak(s: inproc String) -> xproc String {
	return s
}
`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT001) {
		t.Errorf("want T001, got %v", codes(result))
	}

	result = check(t, `fun pass(s: inproc String) -> xproc String {
	return reveal(s)
}
`)
	if !result.OK {
		t.Errorf("revealed return must pass: %v", codes(result))
	}
}

func TestBaseTypeMismatch(t *testing.T) {
	result := check(t, `let n: Int = "s"`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT003) {
		t.Errorf("want T003, got %v", codes(result))
	}
}

func TestBaseMismatchDoesNotMaskTagPropagation(t *testing.T) {
	// n + s is a base type error, but the tag still propagates.
	input := `let n: Int = 1
let s: inproc String = "k"
let bad = n + s
`
	program := parseProgram(t, input)
	result := checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	if result.OK {
		t.Fatal("check should fail with T003")
	}
	if !hasCode(result, diagnostics.ErrT003) {
		t.Errorf("want T003, got %v", codes(result))
	}
	value := program.Statements[2].(*ast.LetStatement).Value
	if result.Tags[value] != typesystem.TagInProc {
		t.Errorf("tag = %v, want TagInProc despite base error", result.Tags[value])
	}
}

func TestDiagnosticMessageMentionsReveal(t *testing.T) {
	result := check(t, sendPrelude+`let x: inproc String = "secret"
send(x)
`)
	if len(result.Diagnostics) == 0 {
		t.Fatal("no diagnostics")
	}
	msg := result.Diagnostics[0].Message
	want := "type inproc String is not assignable to type xproc String; use reveal() to convert"
	if msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestUndefinedSymbol(t *testing.T) {
	result := check(t, `send(x)`)
	if result.OK {
		t.Fatal("check should fail")
	}
	if !hasCode(result, diagnostics.ErrT004) {
		t.Errorf("want T004, got %v", codes(result))
	}
}

func TestAggregatesResolveToNoTag(t *testing.T) {
	input := `type Creds = { name: xproc String, token: inproc String }
let c = Creds{name: "a", token: "b"}
`
	program := parseProgram(t, input)
	result := checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	if !result.OK {
		t.Fatalf("check failed: %v", codes(result))
	}
	value := program.Statements[1].(*ast.LetStatement).Value
	if result.Tags[value] != typesystem.TagNone {
		t.Errorf("record literal tag = %v, want TagNone", result.Tags[value])
	}
}

package targets

import (
	"testing"

	"github.com/funvibe/procheck/internal/checker"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/lexer"
	"github.com/funvibe/procheck/internal/parser"
	"github.com/funvibe/procheck/internal/pipeline"
	"github.com/funvibe/procheck/tests/fuzz/generators"
)

func runChecker(source string, strict bool) (*checker.Result, []*diagnostics.DiagnosticError) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = "fuzz.xp"
	stream := lexer.NewTokenStream(lexer.New(source))
	program := parser.New(stream, ctx).ParseProgram()
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors
	}
	return checker.New(checker.Options{StrictProcessBoundaries: strict}).Check(program), nil
}

func hasTagMismatch(result *checker.Result) bool {
	for _, d := range result.Diagnostics {
		if d.Code == diagnostics.ErrT001 {
			return true
		}
	}
	return false
}

// FuzzCheckerSoundness generates programs with a known ground truth
// and checks that the checker rejects exactly the leaking ones: no
// inproc value reaches the xproc sink without a reveal in any program
// the checker passes.
func FuzzCheckerSoundness(f *testing.F) {
	seeds := [][]byte{
		{},
		{0},
		{1},
		{1, 0, 1, 0},
		{3, 1, 4, 1, 5, 9, 2, 6},
		{255, 128, 64, 32, 16, 8, 4, 2, 1},
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		gen := generators.NewFromData(data)
		prog := generators.GenerateBoundaryProgram(gen)

		result, parseErrs := runChecker(prog.Source, true)
		if len(parseErrs) > 0 {
			t.Fatalf("generated program failed to parse: %v\n%s", parseErrs, prog.Source)
		}

		if prog.Leaks {
			if result.OK || !hasTagMismatch(result) {
				t.Fatalf("leaking program passed the check:\n%s", prog.Source)
			}
		} else {
			if !result.OK {
				t.Fatalf("clean program rejected: %v\n%s", result.Diagnostics, prog.Source)
			}
			if len(result.Reveals) != prog.RevealCount {
				t.Fatalf("got %d reveal sites, want %d\n%s",
					len(result.Reveals), prog.RevealCount, prog.Source)
			}
		}

		// Bypass mode accepts everything with zero diagnostics.
		bypass, _ := runChecker(prog.Source, false)
		if bypass == nil || !bypass.OK || len(bypass.Diagnostics) != 0 {
			t.Fatalf("bypass mode produced diagnostics:\n%s", prog.Source)
		}
	})
}

// FuzzParser throws arbitrary text at the lexer and parser; anything
// goes as long as nothing panics and errors carry positions.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"let x: inproc String = \"s\"",
		"fun f(a: xproc String) -> Unit { }",
		"type T = { a: inproc String }",
		"sink(reveal(x))",
		"let m = \"a ${b} c\"",
		"((((((((((",
		"let let let",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		ctx := pipeline.NewPipelineContext(source)
		stream := lexer.NewTokenStream(lexer.New(source))
		program := parser.New(stream, ctx).ParseProgram()
		if program == nil {
			t.Fatal("ParseProgram returned nil")
		}
		if len(ctx.Errors) > 0 {
			return
		}
		// Well-formed input must also survive the checker.
		checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)
	})
}

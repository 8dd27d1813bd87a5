package checker_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/procheck/internal/checker"
)

// TestScenarios runs every testdata archive. Each archive holds one
// source file plus an "expect" file listing the wanted diagnostics as
// "line:col CODE" lines; an empty expect file means the check passes.
func TestScenarios(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no scenario archives in testdata")
	}

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			var source, expect string
			for _, file := range archive.Files {
				switch {
				case strings.HasSuffix(file.Name, ".xp"):
					source = string(file.Data)
				case file.Name == "expect":
					expect = string(file.Data)
				}
			}
			if source == "" {
				t.Fatal("archive has no .xp source file")
			}

			program := parseProgram(t, source)
			result := checker.New(checker.Options{StrictProcessBoundaries: true}).Check(program)

			var got []string
			for _, d := range result.Diagnostics {
				got = append(got, fmt.Sprintf("%d:%d %s", d.Token.Line, d.Token.Column, d.Code))
			}

			var want []string
			for _, line := range strings.Split(strings.TrimSpace(expect), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					want = append(want, line)
				}
			}

			if len(got) != len(want) {
				t.Fatalf("got %d diagnostics %v, want %d %v", len(got), got, len(want), want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("diagnostic %d: got %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/procheck/internal/audit"
	"github.com/funvibe/procheck/internal/checker"
	"github.com/funvibe/procheck/internal/config"
	"github.com/funvibe/procheck/internal/diagnostics"
	"github.com/funvibe/procheck/internal/parser"
	"github.com/funvibe/procheck/internal/pipeline"
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Run is the CLI entry point. Returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "audit":
		return runAudit(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: procheck <command> [flags] [files]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  check [files]   run the process-boundary checker")
	fmt.Fprintln(w, "  audit           list recorded reveal sites")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "check flags:")
	fmt.Fprintln(w, "  -strict         enable checks (default true; -strict=false bypasses)")
	fmt.Fprintln(w, "  -config path    config file (default "+config.DefaultConfigFile+")")
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", true, "enable process-boundary checks")
	configPath := fs.String("config", config.DefaultConfigFile, "config file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "check: no input files")
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	opts := checker.Options{
		StrictProcessBoundaries: *strict && cfg.IsStrict(),
		Serializers:             cfg.Serializers,
		RevealAliases:           cfg.RevealAliases,
	}

	var store *audit.Store
	if cfg.AuditDB != "" {
		store, err = audit.Open(cfg.AuditDB)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		defer store.Close()
	}

	color := colorEnabled(stdout)
	failed := false
	for _, file := range files {
		if !isSourceFile(file) {
			fmt.Fprintf(stderr, "skipping %s: not a source file\n", file)
			continue
		}
		source, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintln(stderr, err)
			failed = true
			continue
		}

		ctx := pipeline.NewPipelineContext(string(source))
		ctx.FilePath = file
		check := &checker.CheckerProcessor{Options: opts}
		pipeline.New(&parser.ParserProcessor{}, check).Run(ctx)

		diagnostics.Render(stdout, ctx.Errors, color)
		if diagnostics.HasErrors(ctx.Errors) {
			failed = true
			continue
		}
		if store != nil && check.Result != nil {
			if err := store.Record(file, check.Result.Reveals); err != nil {
				fmt.Fprintln(stderr, err)
				failed = true
			}
		}
	}

	if failed {
		return 1
	}
	return 0
}

func runAudit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultConfigFile, "config file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if cfg.AuditDB == "" {
		fmt.Fprintln(stderr, "audit: no auditDb configured in "+*configPath)
		return 2
	}

	store, err := audit.Open(cfg.AuditDB)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, rec := range records {
		fmt.Fprintf(stdout, "%s:%d:%d: reveal %s -> %s (%s)\n",
			rec.File, rec.Line, rec.Column, rec.Source, rec.Result, rec.ID)
	}
	return 0
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package diagnostics

import (
	"fmt"
	"io"
)

const (
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// Render writes diagnostics as "file:line:col: [CODE] message", one per
// line. When color is true, errors are red and warnings yellow.
func Render(w io.Writer, diags []*DiagnosticError, color bool) {
	for _, d := range diags {
		pos := fmt.Sprintf("%s:%d:%d", d.File, d.Token.Line, d.Token.Column)
		label := fmt.Sprintf("[%s]", d.Code)
		if color {
			tint := ansiRed
			if d.Severity() == SeverityWarning {
				tint = ansiYellow
			}
			fmt.Fprintf(w, "%s%s%s: %s%s%s %s\n", ansiBold, pos, ansiReset, tint, label, ansiReset, d.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s %s\n", pos, label, d.Message)
	}
}

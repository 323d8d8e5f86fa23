package diagnostics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ToPrettyString renders every recorded error against the query source in a
// human-friendly, colored form: the message, the offending line, and a caret
// pointing at the column. Respects color.NoColor for plain output.
func (d *Diagnostics) ToPrettyString(queryName, source string) string {
	var buf bytes.Buffer
	lines := strings.Split(source, "\n")
	for _, err := range d.errors {
		writePrettyError(&buf, queryName, lines, err)
	}
	return buf.String()
}

func writePrettyError(buf *bytes.Buffer, queryName string, lines []string, err SyntaxError) {
	errorTitle := color.New(color.FgRed, color.Bold)
	errorDesc := color.New(color.Bold)
	arrowColor := color.New(color.FgCyan, color.Bold)
	lineNumColor := color.New(color.FgCyan, color.Bold)
	caretColor := color.New(color.FgRed, color.Bold)

	errorTitle.Fprintf(buf, "error")
	fmt.Fprintf(buf, ": ")
	errorDesc.Fprintf(buf, "%s\n", err.Message())

	pos := err.Position()
	arrowColor.Fprintf(buf, "  --> ")
	fmt.Fprintf(buf, "%s:%d:%d\n", queryName, pos.Line, pos.Column)

	lineIdx := pos.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return
	}

	lineNumColor.Fprintf(buf, "   | \n")
	lineNumColor.Fprintf(buf, "%2d | ", pos.Line)
	fmt.Fprintf(buf, "%s\n", lines[lineIdx])

	caret := pos.Column - 1
	if caret < 0 {
		caret = 0
	}
	if caret > len(lines[lineIdx]) {
		caret = len(lines[lineIdx])
	}
	lineNumColor.Fprintf(buf, "   | ")
	fmt.Fprintf(buf, "%s", strings.Repeat(" ", caret))
	caretColor.Fprintf(buf, "^\n")
	lineNumColor.Fprintf(buf, "   | \n")
}

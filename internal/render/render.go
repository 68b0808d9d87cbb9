// Package render writes command output for humans or machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Renderer writes command results either as colored text or as JSON lines.
type Renderer struct {
	jsonMode bool
	out      io.Writer
	errOut   io.Writer
}

// New creates a renderer. JSON mode wins over color settings.
func New(jsonMode, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{jsonMode: jsonMode, out: os.Stdout, errOut: os.Stderr}
}

// NewWriter creates a renderer over explicit writers, for tests.
func NewWriter(out, errOut io.Writer, jsonMode bool) *Renderer {
	return &Renderer{jsonMode: jsonMode, out: out, errOut: errOut}
}

// Result emits v as JSON in JSON mode, otherwise runs the human renderer.
func (r *Renderer) Result(v any, human func()) {
	if r.jsonMode {
		b, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(r.errOut, "render error: %v\n", err)
			return
		}
		fmt.Fprintln(r.out, string(b))
		return
	}
	human()
}

// OK prints a success line.
func (r *Renderer) OK(format string, args ...any) {
	if r.jsonMode {
		b, _ := json.Marshal(map[string]string{"status": "ok", "message": fmt.Sprintf(format, args...)})
		fmt.Fprintln(r.out, string(b))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("✓"), fmt.Sprintf(format, args...))
}

// Line prints a plain output line.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Hint prints a dimmed secondary line to stderr.
func (r *Renderer) Hint(format string, args ...any) {
	fmt.Fprintln(r.errOut, color.New(color.FgHiBlack).Sprintf(format, args...))
}

// Table prints rows under a header with padded columns.
func (r *Renderer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if pad := widths[i] - len(cell); pad > 0 && i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteByte('\n')
	}

	bold := color.New(color.Bold)
	writeRow(header)
	headerLine := b.String()
	b.Reset()
	fmt.Fprint(r.out, bold.Sprint(headerLine))

	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprint(r.out, b.String())
}

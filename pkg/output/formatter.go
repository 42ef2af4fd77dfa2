// Package output provides shared output formatting for CLI commands. It
// supports human-readable text output and pretty-printed JSON output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Formatter handles output formatting with support for JSON mode.
type Formatter struct {
	JSON   bool // Output as JSON
	Writer io.Writer
}

// New creates a new Formatter with the given options.
func New(jsonOutput bool, w io.Writer) *Formatter {
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{
		JSON:   jsonOutput,
		Writer: w,
	}
}

// Print outputs the data according to the formatter's configuration. For
// JSON mode, it marshals the data; for text mode, it calls textFunc. A nil
// textFunc falls back to JSON.
func (f *Formatter) Print(data interface{}, textFunc func(io.Writer, interface{})) error {
	if f.JSON || textFunc == nil {
		return f.printJSON(data)
	}
	textFunc(f.Writer, data)
	return nil
}

// PrintRaw writes a preformatted string followed by a newline.
func (f *Formatter) PrintRaw(s string) error {
	_, err := fmt.Fprintln(f.Writer, s)
	return err
}

func (f *Formatter) printJSON(data interface{}) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

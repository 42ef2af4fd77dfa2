// Package pathvalidation validates file paths that arrive from an LLM host
// before they touch the local filesystem.
package pathvalidation

import (
	"fmt"
	"regexp"
)

// UnresolvedTemplateError indicates a path contains an unresolved template
// variable, typically because the host substituted nothing into a
// placeholder.
type UnresolvedTemplateError struct {
	Path     string
	Variable string
}

func (e *UnresolvedTemplateError) Error() string {
	return fmt.Sprintf("path contains unresolved template variable '%s' - check your variable substitution", e.Variable)
}

// templatePatterns match placeholder syntaxes seen in LLM-supplied paths.
// Order matters - more specific patterns come before more general ones.
var templatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{\{[^}]*\}\}`),    // ${{VAR}}
	regexp.MustCompile(`\{\{[^}]*\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$\{[^}]+\}`),        // ${VAR}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

// CheckUnresolvedTemplateVars reports an error when the path still contains a
// template placeholder instead of a concrete filename.
func CheckUnresolvedTemplateVars(path string) error {
	for _, p := range templatePatterns {
		if match := p.FindString(path); match != "" {
			return &UnresolvedTemplateError{Path: path, Variable: match}
		}
	}
	return nil
}

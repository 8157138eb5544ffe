// Package predicate compiles CEL expressions into payload matchers for the
// CLI's offline filter command. Payloads are opaque bytes to the queue core;
// here they are exposed to the expression as raw text and, when they parse,
// as JSON.
package predicate

import (
	"encoding/json"
	"strings"

	"github.com/google/cel-go/cel"
)

// Matcher wraps a compiled CEL program. When disabled (empty expression),
// Match always returns false so nothing is deleted by accident.
type Matcher struct {
	prog    cel.Program
	enabled bool
}

// Compile builds a Matcher from a CEL expression over:
//
//	sequence (int)  - the record's sequence key
//	size     (int)  - payload length in bytes
//	text     (string) - payload as a string
//	json     (dyn)  - parsed JSON payload, null when not valid JSON
func Compile(expr string) (Matcher, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Matcher{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("sequence", cel.IntType),
		cel.Variable("size", cel.IntType),
		cel.Variable("text", cel.StringType),
		cel.Variable("json", cel.DynType),
	)
	if err != nil {
		return Matcher{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Matcher{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Matcher{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{prog: prog, enabled: true}, nil
}

// Match evaluates the expression against one record. Evaluation errors count
// as no-match.
func (m Matcher) Match(sequence uint64, payload []byte) bool {
	if !m.enabled {
		return false
	}
	var jsonObj any
	_ = json.Unmarshal(payload, &jsonObj)
	out, _, err := m.prog.Eval(map[string]any{
		"sequence": int64(sequence),
		"size":     int64(len(payload)),
		"text":     string(payload),
		"json":     jsonObj,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

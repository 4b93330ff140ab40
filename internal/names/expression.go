package names

import (
	"regexp"
	"strings"
)

// ExpressionDiscoverer infers parameter names from the pointcut text and
// the declared returning/throwing names. Variables bound in args(...)
// clauses are assigned to the leading unresolved parameters in the order
// they appear; the returning name, then the throwing name, take the
// trailing slots. The inference succeeds only when the candidate count
// matches the unresolved parameter count exactly; anything ambiguous is a
// definitive failure, not a guess.
type ExpressionDiscoverer struct{}

var (
	argsClauseRe = regexp.MustCompile(`\bargs\s*\(([^)]*)\)`)
	identRe      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Predeclared type names cannot be binding variables: args(int, s) binds
// only s. This mirrors the usual pointcut-language ambiguity between a
// type pattern and a variable name.
var predeclared = map[string]struct{}{
	"bool": {}, "byte": {}, "complex64": {}, "complex128": {}, "error": {},
	"float32": {}, "float64": {}, "int": {}, "int8": {}, "int16": {},
	"int32": {}, "int64": {}, "rune": {}, "string": {}, "uint": {},
	"uint8": {}, "uint16": {}, "uint32": {}, "uint64": {}, "uintptr": {},
	"any": {},
}

// DiscoverNames implements Discoverer.
func (ExpressionDiscoverer) DiscoverNames(req Request) ([]string, bool) {
	candidates := bindingVariables(req.Pointcut)
	if req.Returning != "" {
		candidates = append(candidates, req.Returning)
	}
	if req.Throwing != "" {
		candidates = append(candidates, req.Throwing)
	}
	if len(candidates) != req.Want {
		return nil, false
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, dup := seen[name]; dup {
			return nil, false
		}
		seen[name] = struct{}{}
	}
	return candidates, true
}

// bindingVariables extracts the variable names bound by args(...) clauses
// of expr, in order of appearance.
func bindingVariables(expr string) []string {
	var vars []string
	for _, clause := range argsClauseRe.FindAllStringSubmatch(expr, -1) {
		for _, token := range strings.Split(clause[1], ",") {
			token = strings.TrimSpace(token)
			if token == "" || token == ".." || token == "*" {
				continue
			}
			if !identRe.MatchString(token) {
				continue
			}
			if _, isType := predeclared[token]; isType {
				continue
			}
			vars = append(vars, token)
		}
	}
	return vars
}

var _ Discoverer = ExpressionDiscoverer{}

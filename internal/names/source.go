package names

import (
	"go/ast"
	"go/parser"
	"go/token"
	"runtime"
	"sync"
)

// SourceDiscoverer recovers parameter names from the advice function's Go
// source file. reflect strips parameter names, but runtime.FuncForPC
// still knows the file and line the function was declared on; parsing
// that file and locating the declaration yields the full name list. This
// only works when the source that built the binary is present on disk,
// so it sits first in the chain with heuristics behind it.
//
// Results are cached per entry PC; a failed lookup is cached too, since
// the source file will not change while the process runs.
type SourceDiscoverer struct {
	mu    sync.Mutex
	cache map[uintptr]sourceResult
}

type sourceResult struct {
	names []string
	ok    bool
}

// NewSourceDiscoverer creates a source-based discoverer with an empty cache.
func NewSourceDiscoverer() *SourceDiscoverer {
	return &SourceDiscoverer{cache: make(map[uintptr]sourceResult)}
}

// DiscoverNames implements Discoverer.
func (d *SourceDiscoverer) DiscoverNames(req Request) ([]string, bool) {
	if req.Entry == 0 {
		return nil, false
	}

	d.mu.Lock()
	cached, hit := d.cache[req.Entry]
	d.mu.Unlock()
	if !hit {
		cached.names, cached.ok = discoverFromSource(req.Entry)
		d.mu.Lock()
		d.cache[req.Entry] = cached
		d.mu.Unlock()
	}
	if !cached.ok || len(cached.names) < req.Skip {
		return nil, false
	}
	return cached.names[req.Skip:], true
}

// discoverFromSource parses the declaring file and returns the declared
// parameter names of the function whose declaration starts at the line
// runtime reports for pc.
func discoverFromSource(pc uintptr) ([]string, bool) {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return nil, false
	}
	file, line := fn.FileLine(fn.Entry())
	if file == "" || line == 0 {
		return nil, false
	}

	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, false
	}

	var found *ast.FuncType
	ast.Inspect(parsed, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		var ft *ast.FuncType
		switch fn := n.(type) {
		case *ast.FuncDecl:
			ft = fn.Type
		case *ast.FuncLit:
			ft = fn.Type
		default:
			return true
		}
		// runtime reports the line of the func keyword. The first
		// function starting on that line wins; two function literals on
		// one line are indistinguishable here.
		if fset.Position(ft.Pos()).Line == line {
			found = ft
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return paramNames(found)
}

// paramNames collects the declared parameter names in order. Any unnamed
// or blank parameter makes the whole declaration unresolvable, never a
// partially filled list.
func paramNames(ft *ast.FuncType) ([]string, bool) {
	if ft.Params == nil {
		return nil, true
	}
	var names []string
	for _, field := range ft.Params.List {
		if len(field.Names) == 0 {
			return nil, false
		}
		for _, ident := range field.Names {
			if ident.Name == "_" {
				return nil, false
			}
			names = append(names, ident.Name)
		}
	}
	return names, true
}

var _ Discoverer = (*SourceDiscoverer)(nil)

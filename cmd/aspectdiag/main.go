// Command aspectdiag validates an aspect configuration against the Go
// source tree that defines the advice functions. It resolves each advice
// function's declared parameter names and reports the slot
// classification its binding plan would compile to, so configuration
// defects surface before the application first hits a pointcut.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/types"
	"log"
	"runtime/debug"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/aspectweave/weave/internal/config"
)

// Version info - injected at build time via -ldflags or detected at runtime.
var (
	Version   = "0.0.1"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func detectVersionInfo() {
	if Version != "0.0.1" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if len(setting.Value) >= 8 {
					Commit = setting.Value[:8]
				}
			case "vcs.time":
				BuildDate = setting.Value
			}
		}
	}
}

func main() {
	configPath := flag.String("config", "aspects.yaml", "aspect configuration file")
	dir := flag.String("dir", ".", "directory of the Go module declaring the advice functions")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		detectVersionInfo()
		fmt.Printf("aspectdiag %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("aspectdiag: %v", err)
	}

	decls, err := loadFunctionDecls(*dir)
	if err != nil {
		log.Fatalf("aspectdiag: %v", err)
	}

	problems := 0
	for _, aspect := range cfg.Aspects {
		fmt.Printf("aspect %s\n", aspect.Name)
		for _, adv := range aspect.Advices {
			report, ok := describeAdvice(adv, decls[adv.Name])
			if !ok {
				problems++
			}
			fmt.Printf("  %s\n", report)
		}
	}
	if problems > 0 {
		log.Fatalf("aspectdiag: %d advice declaration(s) have problems", problems)
	}
}

// loadFunctionDecls indexes every top-level function declaration in the
// packages under dir by name.
func loadFunctionDecls(dir string) (map[string]*ast.FuncDecl, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages in %s: %w", dir, err)
	}
	decls := make(map[string]*ast.FuncDecl)
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				if fd, ok := decl.(*ast.FuncDecl); ok && fd.Recv == nil {
					if _, exists := decls[fd.Name.Name]; !exists {
						decls[fd.Name.Name] = fd
					}
				}
			}
		}
	}
	return decls, nil
}

// describeAdvice renders the slot classification one advice would compile
// to, or the defect preventing it.
func describeAdvice(adv config.Advice, decl *ast.FuncDecl) (string, bool) {
	head := fmt.Sprintf("%s (%s)", adv.Name, adv.Kind)
	if decl == nil {
		return head + ": function not found", false
	}

	params := declaredParams(decl)
	slots, problem := classify(adv, params)
	if problem != "" {
		return head + ": " + problem, false
	}
	return head + ": " + strings.Join(slots, ", "), true
}

type param struct {
	name string
	typ  string
}

func declaredParams(decl *ast.FuncDecl) []param {
	var params []param
	if decl.Type.Params == nil {
		return params
	}
	for _, field := range decl.Type.Params.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			params = append(params, param{typ: typ})
			continue
		}
		for _, ident := range field.Names {
			params = append(params, param{name: ident.Name, typ: typ})
		}
	}
	return params
}

// classify mirrors the engine compiler's parameter classification on the
// syntactic signature: a leading join-point marker, then returning,
// throwing and pointcut-variable slots by name.
func classify(adv config.Advice, params []param) ([]string, string) {
	var slots []string
	skip := 0
	if len(params) > 0 {
		switch {
		case strings.HasSuffix(params[0].typ, "ProceedingJoinPoint"):
			if adv.Kind != "around" {
				return nil, fmt.Sprintf("a proceeding join point parameter is only legal for around advice, not %s", adv.Kind)
			}
			slots = append(slots, "0:join-point")
			skip = 1
		case strings.HasSuffix(params[0].typ, "JoinPoint"):
			slots = append(slots, "0:join-point")
			skip = 1
		case strings.HasSuffix(params[0].typ, "StaticPart"):
			slots = append(slots, "0:join-point-static")
			skip = 1
		}
	}

	remaining := params[skip:]
	resolved := adv.ArgNames
	if len(resolved) == 0 {
		for _, p := range remaining {
			if p.name == "" || p.name == "_" {
				return nil, "parameter names are not declared in source; set argNames in the configuration"
			}
			resolved = append(resolved, p.name)
		}
	}
	if len(resolved) != len(remaining) {
		return nil, fmt.Sprintf("expected %d parameter names, got %d", len(remaining), len(resolved))
	}

	boundReturning := false
	boundThrowing := false
	for i, name := range resolved {
		idx := skip + i
		switch {
		case adv.Returning != "" && name == adv.Returning:
			if adv.Kind != "after-returning" && adv.Kind != "around" {
				return nil, fmt.Sprintf("%s advice cannot bind a returning value", adv.Kind)
			}
			slots = append(slots, fmt.Sprintf("%d:returning(%s)", idx, name))
			boundReturning = true
		case adv.Throwing != "" && name == adv.Throwing:
			if adv.Kind != "after-throwing" && adv.Kind != "around" {
				return nil, fmt.Sprintf("%s advice cannot bind a thrown error", adv.Kind)
			}
			slots = append(slots, fmt.Sprintf("%d:throwing(%s)", idx, name))
			boundThrowing = true
		default:
			slots = append(slots, fmt.Sprintf("%d:pointcut-variable(%s %s)", idx, name, remaining[i].typ))
		}
	}
	if adv.Returning != "" && !boundReturning {
		return nil, fmt.Sprintf("returning name %q is not a parameter of the advice", adv.Returning)
	}
	if adv.Throwing != "" && !boundThrowing {
		return nil, fmt.Sprintf("throwing name %q is not a parameter of the advice", adv.Throwing)
	}
	if len(slots) == 0 {
		return []string{"no parameters"}, ""
	}
	return slots, ""
}

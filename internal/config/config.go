// Package config loads aspect configuration: which advice functions
// exist, their kinds, pointcut text, and the optional binding
// declarations (explicit argument names, returning/throwing names). It
// adapts external configuration into advice definitions; it never parses
// or matches pointcut expressions itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aspectweave/weave/internal/advice"
)

// AspectConfig is the root of an aspect configuration file.
type AspectConfig struct {
	Aspects []Aspect `yaml:"aspects"`
}

// Aspect groups the advices contributed by one aspect.
type Aspect struct {
	Name    string   `yaml:"name"`
	Advices []Advice `yaml:"advices"`
}

// Advice declares one advice binding.
type Advice struct {
	// Name identifies the advice and selects its function at registration.
	Name string `yaml:"name"`

	// Kind is one of: before, after, after-returning, after-throwing,
	// around.
	Kind string `yaml:"kind"`

	// Pointcut is the expression text the advice is bound to. Carried
	// opaquely for the matcher, heuristic name inference and diagnostics.
	Pointcut string `yaml:"pointcut,omitempty"`

	// ArgNames overrides parameter-name resolution when set. Covers the
	// parameters after a leading join-point marker, in order.
	ArgNames []string `yaml:"argNames,omitempty"`

	// Returning and Throwing name the parameters that receive the
	// intercepted call's result and error.
	Returning string `yaml:"returning,omitempty"`
	Throwing  string `yaml:"throwing,omitempty"`
}

// Load reads and validates an aspect configuration file.
func Load(path string) (*AspectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aspect config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates aspect configuration YAML.
func Parse(data []byte) (*AspectConfig, error) {
	var cfg AspectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse aspect config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the declarations that can be verified without the
// advice functions themselves.
func (c *AspectConfig) Validate() error {
	seen := make(map[string]struct{})
	for _, aspect := range c.Aspects {
		if aspect.Name == "" {
			return fmt.Errorf("aspect with empty name")
		}
		for _, adv := range aspect.Advices {
			if adv.Name == "" {
				return fmt.Errorf("aspect %q: advice with empty name", aspect.Name)
			}
			if _, dup := seen[adv.Name]; dup {
				return fmt.Errorf("advice %q declared more than once", adv.Name)
			}
			seen[adv.Name] = struct{}{}
			if _, err := advice.ParseKind(adv.Kind); err != nil {
				return fmt.Errorf("advice %q: %w", adv.Name, err)
			}
		}
	}
	return nil
}

// Definition builds the advice definition for this declaration around fn.
func (a Advice) Definition(fn any) (*advice.Definition, error) {
	kind, err := advice.ParseKind(a.Kind)
	if err != nil {
		return nil, fmt.Errorf("advice %q: %w", a.Name, err)
	}
	opts := []advice.Option{}
	if a.Pointcut != "" {
		opts = append(opts, advice.WithPointcut(a.Pointcut))
	}
	if len(a.ArgNames) > 0 {
		opts = append(opts, advice.WithArgNames(a.ArgNames...))
	}
	if a.Returning != "" {
		opts = append(opts, advice.WithReturning(a.Returning))
	}
	if a.Throwing != "" {
		opts = append(opts, advice.WithThrowing(a.Throwing))
	}
	return advice.NewDefinition(a.Name, kind, fn, opts...)
}

// Definitions resolves every declared advice against funcs, a map from
// advice name to function value, and builds the definitions in
// declaration order.
func (c *AspectConfig) Definitions(funcs map[string]any) ([]*advice.Definition, error) {
	var defs []*advice.Definition
	for _, aspect := range c.Aspects {
		for _, adv := range aspect.Advices {
			fn, ok := funcs[adv.Name]
			if !ok {
				return nil, fmt.Errorf("aspect %q: no function registered for advice %q", aspect.Name, adv.Name)
			}
			def, err := adv.Definition(fn)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// Package weave exposes the public API of the advice binding and
// invocation engine, re-exported from the internal packages.
package weave

import (
	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/config"
	"github.com/aspectweave/weave/internal/engine"
	"github.com/aspectweave/weave/internal/joinpoint"
	"github.com/aspectweave/weave/internal/names"
	"github.com/aspectweave/weave/internal/pointcut"
)

// Join point types advice parameters are bound against.
type JoinPoint = joinpoint.JoinPoint
type ProceedingJoinPoint = joinpoint.ProceedingJoinPoint
type StaticPart = joinpoint.StaticPart
type Invocation = joinpoint.Invocation

// NewInvocation builds a join point for one intercepted call.
func NewInvocation(static StaticPart, target any, args []any, proceed func(args []any) (any, error)) *Invocation {
	return joinpoint.NewInvocation(static, target, args, proceed)
}

// Advice kinds.
type Kind = advice.Kind

const (
	Before         = advice.Before
	After          = advice.After
	AfterReturning = advice.AfterReturning
	AfterThrowing  = advice.AfterThrowing
	Around         = advice.Around
)

// ParseKind converts a configuration spelling into a Kind.
func ParseKind(s string) (Kind, error) { return advice.ParseKind(s) }

// Core engine types.
type Definition = advice.Definition
type Option = advice.Option
type BindingPlan = advice.BindingPlan
type ParameterSlot = advice.ParameterSlot
type SlotKind = advice.SlotKind
type CallContext = advice.CallContext
type ConfigurationError = advice.ConfigurationError
type BindingMismatchError = advice.BindingMismatchError

const (
	SlotJoinPoint       = advice.SlotJoinPoint
	SlotJoinPointStatic = advice.SlotJoinPointStatic
	SlotVariable        = advice.SlotVariable
	SlotReturning       = advice.SlotReturning
	SlotThrowing        = advice.SlotThrowing
)

// NewDefinition registers an advice function of the given kind.
func NewDefinition(name string, kind Kind, fn any, opts ...Option) (*Definition, error) {
	return advice.NewDefinition(name, kind, fn, opts...)
}

// Definition options.
func WithPointcut(text string) Option         { return advice.WithPointcut(text) }
func WithReturning(name string) Option        { return advice.WithReturning(name) }
func WithThrowing(name string) Option         { return advice.WithThrowing(name) }
func WithArgNames(argNames ...string) Option  { return advice.WithArgNames(argNames...) }

// Pointcut collaborator surface.
type Captures = pointcut.Captures
type VariableRegistrar = pointcut.VariableRegistrar
type Schema = pointcut.Schema

// NewSchema creates an empty pointcut variable schema.
func NewSchema() *Schema { return pointcut.NewSchema() }

// Name resolution.
type Discoverer = names.Discoverer
type NameRequest = names.Request

// NewNameChain creates a resolution chain over the given strategies.
func NewNameChain(discoverers ...Discoverer) *names.Chain { return names.NewChain(discoverers...) }

// NewSourceDiscoverer creates the source-based name discoverer.
func NewSourceDiscoverer() *names.SourceDiscoverer { return names.NewSourceDiscoverer() }

// ExpressionDiscoverer infers names from the pointcut text.
type ExpressionDiscoverer = names.ExpressionDiscoverer

// Engine.
type Engine = engine.Engine
type EngineConfig = engine.Config

// New assembles an engine; nil selects the default collaborators.
func New(cfg *EngineConfig) *Engine { return engine.New(cfg) }

// DefaultEngineConfig returns the standard collaborator set.
func DefaultEngineConfig() *EngineConfig { return engine.DefaultConfig() }

// Aspect configuration.
type AspectConfig = config.AspectConfig
type AspectAdvice = config.Advice

// LoadAspectConfig loads a YAML aspect configuration file.
func LoadAspectConfig(path string) (*AspectConfig, error) { return config.Load(path) }

// ParseAspectConfig decodes aspect configuration YAML.
func ParseAspectConfig(data []byte) (*AspectConfig, error) { return config.Parse(data) }

// Package endpoint implements the declarative endpoint-command framework behind
// `saf emasser get`.
//
// An EndpointDefinition describes one remote resource family (e.g. workflow_instances)
// as an ordered list of variants. Each variant is selected by an action token typed
// on the command line and declares the parameters its remote call takes, in call order.
//
// FLOW:
//  1. Registry.Lookup finds the endpoint definition by name
//  2. Resolve picks the variant matching the action token (exact, case-sensitive)
//  3. Bind turns the supplied flag values into ordered Args, enforcing requiredness
//  4. An Invoker performs the remote call and returns an Outcome
//
// The registry is an explicitly constructed, read-only value. It is built once at
// startup and passed to whoever needs it; tests build their own registries.
package endpoint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/secureonelabs/saf/internal/validate"
)

// Kind is the value type of a parameter flag.
type Kind string

const (
	KindString  Kind = "string"
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindStrings Kind = "strings" // comma-separated / repeatable list
)

// ParameterSpec is one argument of a variant's remote call.
type ParameterSpec struct {
	Flag        string `yaml:"flag"`
	Short       string `yaml:"short,omitempty"`
	Kind        Kind   `yaml:"kind"`
	Required    bool   `yaml:"required,omitempty"`
	Position    int    `yaml:"-"` // index in the remote call's argument order
	Description string `yaml:"description"`
}

// VariantDefinition is one retrieval mode of an endpoint.
type VariantDefinition struct {
	Action      string          `yaml:"action"`
	Description string          `yaml:"description"`
	Example     string          `yaml:"example"`
	Parameters  []ParameterSpec `yaml:"parameters"`
}

// Ordered returns the parameters sorted by Position.
func (v *VariantDefinition) Ordered() []ParameterSpec {
	params := make([]ParameterSpec, len(v.Parameters))
	copy(params, v.Parameters)
	sort.SliceStable(params, func(i, j int) bool {
		return params[i].Position < params[j].Position
	})
	return params
}

// EndpointDefinition is one remote resource family.
type EndpointDefinition struct {
	Name        string              `yaml:"name"`
	Label       string              `yaml:"label"` // human label used in error output, e.g. "Workflow Instances"
	Description string              `yaml:"description"`
	Variants    []VariantDefinition `yaml:"variants"`
}

// Actions returns the variant action tokens in declared order.
func (d *EndpointDefinition) Actions() []string {
	actions := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		actions = append(actions, v.Action)
	}
	return actions
}

// Flags returns the union of all variant parameters, de-duplicated by flag name
// in first-seen order. This is the flag set declared for the endpoint's command;
// none of them is marked required there since requiredness depends on the variant.
func (d *EndpointDefinition) Flags() []ParameterSpec {
	seen := make(map[string]bool)
	var flags []ParameterSpec
	for _, v := range d.Variants {
		for _, p := range v.Ordered() {
			if seen[p.Flag] {
				continue
			}
			seen[p.Flag] = true
			flags = append(flags, p)
		}
	}
	return flags
}

// Registry maps endpoint names to definitions. It is read-only after NewRegistry.
type Registry struct {
	endpoints map[string]*EndpointDefinition
	order     []string
}

// NewRegistry validates defs and builds a registry. It rejects duplicate endpoint
// names, duplicate action tokens, parameter positions that are not exactly 0..n-1,
// a flag declared with two different kinds in one endpoint, shorthands that
// collide with -h or each other, and definitions missing descriptions or examples.
func NewRegistry(defs ...EndpointDefinition) (*Registry, error) {
	r := &Registry{endpoints: make(map[string]*EndpointDefinition, len(defs))}

	for i := range defs {
		def := defs[i]
		if err := checkDefinition(&def); err != nil {
			return nil, err
		}
		if _, exists := r.endpoints[def.Name]; exists {
			return nil, fmt.Errorf("endpoint %q already registered", def.Name)
		}
		r.endpoints[def.Name] = &def
		r.order = append(r.order, def.Name)
	}

	sort.Strings(r.order)
	return r, nil
}

func checkDefinition(def *EndpointDefinition) error {
	if err := validate.EndpointNameFormat(def.Name); err != nil {
		return err
	}
	if strings.TrimSpace(def.Description) == "" {
		return fmt.Errorf("endpoint %q: description is empty", def.Name)
	}
	if def.Label == "" {
		return fmt.Errorf("endpoint %q: label is empty", def.Name)
	}
	if len(def.Variants) == 0 {
		return fmt.Errorf("endpoint %q: no variants", def.Name)
	}

	actions := make(map[string]bool)
	kinds := make(map[string]Kind)
	shorts := make(map[string]string) // shorthand -> flag
	flagShorts := make(map[string]string)
	for _, v := range def.Variants {
		if err := validate.ActionTokenFormat(v.Action); err != nil {
			return fmt.Errorf("endpoint %q: %w", def.Name, err)
		}
		if actions[v.Action] {
			return fmt.Errorf("endpoint %q: action %q declared twice", def.Name, v.Action)
		}
		actions[v.Action] = true

		if v.Description == "" || v.Example == "" {
			return fmt.Errorf("endpoint %q action %q: description and example are required", def.Name, v.Action)
		}

		positions := make([]bool, len(v.Parameters))
		for _, p := range v.Parameters {
			if err := validate.FlagNameFormat(p.Flag); err != nil {
				return fmt.Errorf("endpoint %q action %q: %w", def.Name, v.Action, err)
			}
			switch p.Kind {
			case KindString, KindBool, KindInt, KindStrings:
			default:
				return fmt.Errorf("endpoint %q flag %q: unknown kind %q", def.Name, p.Flag, p.Kind)
			}
			if p.Position < 0 || p.Position >= len(positions) || positions[p.Position] {
				return fmt.Errorf("endpoint %q action %q: flag %q has invalid or duplicate position %d",
					def.Name, v.Action, p.Flag, p.Position)
			}
			positions[p.Position] = true

			if k, ok := kinds[p.Flag]; ok && k != p.Kind {
				return fmt.Errorf("endpoint %q: flag %q declared as both %s and %s", def.Name, p.Flag, k, p.Kind)
			}
			kinds[p.Flag] = p.Kind
			if s, ok := flagShorts[p.Flag]; ok && s != p.Short {
				return fmt.Errorf("endpoint %q: flag %q declared with shorthands %q and %q", def.Name, p.Flag, s, p.Short)
			}
			flagShorts[p.Flag] = p.Short

			if p.Short != "" {
				if len(p.Short) != 1 || p.Short == "h" {
					return fmt.Errorf("endpoint %q flag %q: invalid shorthand %q", def.Name, p.Flag, p.Short)
				}
				if other, ok := shorts[p.Short]; ok && other != p.Flag {
					return fmt.Errorf("endpoint %q: shorthand -%s used by both %q and %q", def.Name, p.Short, other, p.Flag)
				}
				shorts[p.Short] = p.Flag
			}
		}
	}
	return nil
}

// Lookup returns the definition for name, or ErrUnknownEndpoint.
func (r *Registry) Lookup(name string) (*EndpointDefinition, error) {
	def, ok := r.endpoints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
	}
	return def, nil
}

// Names returns all registered endpoint names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Describe renders the help description of an endpoint: its summary followed by
// one line per variant.
func (r *Registry) Describe(name string) (string, error) {
	def, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(def.Description)
	b.WriteString("\n\nActions:\n")
	width := 0
	for _, a := range def.Actions() {
		width = max(width, len(a))
	}
	for _, v := range def.Variants {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, v.Action, v.Description)
		if required := requiredFlags(&v); len(required) > 0 {
			fmt.Fprintf(&b, "  %-*s  required: --%s\n", width, "", strings.Join(required, ", --"))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Examples returns one example invocation per variant, in declared order.
func (r *Registry) Examples(name string) ([]string, error) {
	def, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	examples := make([]string, 0, len(def.Variants))
	for _, v := range def.Variants {
		examples = append(examples, v.Example)
	}
	return examples, nil
}

func requiredFlags(v *VariantDefinition) []string {
	var flags []string
	for _, p := range v.Ordered() {
		if p.Required {
			flags = append(flags, p.Flag)
		}
	}
	return flags
}

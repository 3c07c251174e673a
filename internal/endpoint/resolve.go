package endpoint

import (
	"fmt"
	"strings"
)

// Resolve returns the variant of def whose action token equals action exactly.
// Matching is case-sensitive; there is no prefix or fuzzy matching.
func Resolve(def *EndpointDefinition, action string) (*VariantDefinition, error) {
	if action == "" {
		return nil, &ResolveError{Endpoint: def.Name, Err: ErrMissingAction}
	}
	for i := range def.Variants {
		if def.Variants[i].Action == action {
			return &def.Variants[i], nil
		}
	}
	return nil, &ResolveError{Endpoint: def.Name, Action: action, Err: ErrActionNotFound}
}

// UsageHint lists every valid invocation of def, one per line, in declared order.
// commandPath is the command prefix shown to the user, e.g. "saf emasser get".
func UsageHint(commandPath string, def *EndpointDefinition) string {
	var b strings.Builder
	b.WriteString("Invalid arguments\nTry this:\n")
	fmt.Fprintf(&b, "\t%s %s [-h or --help]\n", commandPath, def.Name)
	for _, action := range def.Actions() {
		fmt.Fprintf(&b, "\t%s %s %s\n", commandPath, def.Name, action)
	}
	return strings.TrimRight(b.String(), "\n")
}

// EndpointHint lists every endpoint of r, for a name that matched none.
func EndpointHint(commandPath string, r *Registry) string {
	var b strings.Builder
	b.WriteString("Unknown endpoint\nAvailable endpoints:\n")
	for _, name := range r.Names() {
		fmt.Fprintf(&b, "\t%s %s\n", commandPath, name)
	}
	fmt.Fprintf(&b, "Run '%s ENDPOINT --help' for its actions", commandPath)
	return b.String()
}

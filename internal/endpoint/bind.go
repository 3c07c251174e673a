package endpoint

import "fmt"

// Arg is one bound argument. An optional parameter the user did not supply is
// kept in place with Present=false so later positions do not shift.
type Arg struct {
	Name    string
	Value   any
	Present bool
}

// Args is the ordered argument list of one remote call.
type Args []Arg

// Values returns the raw values in call order; absent arguments are nil.
func (a Args) Values() []any {
	values := make([]any, len(a))
	for i, arg := range a {
		if arg.Present {
			values[i] = arg.Value
		}
	}
	return values
}

// Lookup returns the value bound to name and whether it was supplied.
func (a Args) Lookup(name string) (any, bool) {
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, arg.Present
		}
	}
	return nil, false
}

// String returns the string bound to name, or "" when absent.
func (a Args) String(name string) string {
	if v, ok := a.Lookup(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Strings returns the list bound to name, or nil when absent.
func (a Args) Strings(name string) []string {
	if v, ok := a.Lookup(name); ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// BoolPtr returns the bool bound to name, or nil when absent.
func (a Args) BoolPtr(name string) *bool {
	if v, ok := a.Lookup(name); ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

// IntPtr returns the int bound to name, or nil when absent.
func (a Args) IntPtr(name string) *int {
	if v, ok := a.Lookup(name); ok {
		if n, ok := v.(int); ok {
			return &n
		}
	}
	return nil
}

// Bind produces the argument list of v's remote call from the supplied flag
// values, in Position order. supplied holds only the flags the user actually set.
// A missing required parameter fails with *MissingParameterError before anything
// is sent; a supplied value of the wrong type is rejected as well.
func Bind(v *VariantDefinition, supplied map[string]any) (Args, error) {
	params := v.Ordered()
	args := make(Args, 0, len(params))

	for _, p := range params {
		value, ok := supplied[p.Flag]
		if !ok {
			if p.Required {
				return nil, &MissingParameterError{Action: v.Action, Flag: p.Flag}
			}
			args = append(args, Arg{Name: p.Flag})
			continue
		}
		if err := checkKind(p, value); err != nil {
			return nil, err
		}
		args = append(args, Arg{Name: p.Flag, Value: value, Present: true})
	}

	return args, nil
}

func checkKind(p ParameterSpec, value any) error {
	var ok bool
	switch p.Kind {
	case KindString:
		_, ok = value.(string)
	case KindBool:
		_, ok = value.(bool)
	case KindInt:
		_, ok = value.(int)
	case KindStrings:
		_, ok = value.([]string)
	}
	if !ok {
		return fmt.Errorf("flag --%s expects a %s value, got %T", p.Flag, p.Kind, value)
	}
	return nil
}

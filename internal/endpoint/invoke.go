package endpoint

import "context"

// Outcome is the result of one remote call: a response body on success, an
// error on failure. Label names the operation for display.
type Outcome struct {
	Label string
	Body  any
	Err   error
}

// Success builds a successful outcome.
func Success(label string, body any) Outcome {
	return Outcome{Label: label, Body: body}
}

// Failure builds a failed outcome.
func Failure(label string, err error) Outcome {
	return Outcome{Label: label, Err: err}
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Invoker performs the remote call for a resolved variant. Implementations make
// a single attempt: no retry, no backoff.
type Invoker interface {
	Invoke(ctx context.Context, def *EndpointDefinition, v *VariantDefinition, args Args) Outcome
}

// Request is one CLI invocation of an endpoint.
type Request struct {
	Endpoint string
	Action   string
	Flags    map[string]any // only flags the user set
}

// Prepare runs lookup, resolution and binding for req. Any error it returns
// means no remote call may be made.
func Prepare(r *Registry, req Request) (*EndpointDefinition, *VariantDefinition, Args, error) {
	def, err := r.Lookup(req.Endpoint)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := Resolve(def, req.Action)
	if err != nil {
		return def, nil, nil, err
	}
	args, err := Bind(v, req.Flags)
	if err != nil {
		return def, v, nil, err
	}
	return def, v, args, nil
}

// Run prepares req and, if preparation succeeds, invokes it.
func Run(ctx context.Context, r *Registry, inv Invoker, req Request) (Outcome, error) {
	def, v, args, err := Prepare(r, req)
	if err != nil {
		return Outcome{}, err
	}
	return inv.Invoke(ctx, def, v, args), nil
}

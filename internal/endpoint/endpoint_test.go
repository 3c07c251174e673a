package endpoint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// params assigns positions in declared order.
func params(specs ...ParameterSpec) []ParameterSpec {
	for i := range specs {
		specs[i].Position = i
	}
	return specs
}

func workflowInstances() EndpointDefinition {
	return EndpointDefinition{
		Name:        "workflow_instances",
		Label:       "Workflow Instances",
		Description: "Retrieve workflow instances",
		Variants: []VariantDefinition{
			{
				Action:      "all",
				Description: "Retrieves all workflow instances in a site",
				Example:     "saf emasser get workflow_instances all",
				Parameters: params(
					ParameterSpec{Flag: "includeComments", Kind: KindBool, Description: "c"},
					ParameterSpec{Flag: "includeDecommissionSystems", Kind: KindBool, Description: "d"},
					ParameterSpec{Flag: "pageIndex", Kind: KindInt, Description: "p"},
					ParameterSpec{Flag: "sinceDate", Kind: KindString, Description: "s"},
					ParameterSpec{Flag: "status", Kind: KindString, Description: "s"},
				),
			},
			{
				Action:      "byInstanceId",
				Description: "Retrieves workflow(s) instance by ID",
				Example:     "saf emasser get workflow_instances byInstanceId --workflowInstanceId=3",
				Parameters: params(
					ParameterSpec{Flag: "workflowInstanceId", Kind: KindInt, Required: true, Description: "id"},
				),
			},
		},
	}
}

func milestones() EndpointDefinition {
	return EndpointDefinition{
		Name:        "milestones",
		Label:       "Milestones",
		Description: "Retrieve POA&M milestones",
		Variants: []VariantDefinition{
			{
				Action:      "byPoamId",
				Description: "Retrieves milestones for a POA&M",
				Example:     "saf emasser get milestones byPoamId --systemId=1 --poamId=2",
				Parameters: params(
					ParameterSpec{Flag: "systemId", Kind: KindInt, Required: true, Description: "s"},
					ParameterSpec{Flag: "poamId", Kind: KindInt, Required: true, Description: "p"},
				),
			},
			{
				Action:      "reversed",
				Description: "Same parameters, opposite call order",
				Example:     "saf emasser get milestones reversed --systemId=1 --poamId=2",
				Parameters: params(
					ParameterSpec{Flag: "poamId", Kind: KindInt, Required: true, Description: "p"},
					ParameterSpec{Flag: "systemId", Kind: KindInt, Required: true, Description: "s"},
				),
			},
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(workflowInstances(), milestones())
	require.NoError(t, err)
	return r
}

type countingInvoker struct {
	calls int
	args  Args
}

func (c *countingInvoker) Invoke(_ context.Context, def *EndpointDefinition, _ *VariantDefinition, args Args) Outcome {
	c.calls++
	c.args = args
	return Success(def.Label, map[string]any{"ok": true})
}

func TestRegistryAccessors(t *testing.T) {
	r := testRegistry(t)

	assert.Equal(t, []string{"milestones", "workflow_instances"}, r.Names())

	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			def, err := r.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, def.Name)

			desc, err := r.Describe(name)
			require.NoError(t, err)
			assert.NotEmpty(t, desc)
			for _, action := range def.Actions() {
				assert.Contains(t, desc, action)
			}

			examples, err := r.Examples(name)
			require.NoError(t, err)
			require.Len(t, examples, len(def.Variants))
			for _, ex := range examples {
				assert.NotEmpty(t, ex)
			}
		})
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)

	_, err = r.Describe("nope")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)

	_, err = r.Examples("nope")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestDescribeListsRequiredFlags(t *testing.T) {
	r := testRegistry(t)
	desc, err := r.Describe("workflow_instances")
	require.NoError(t, err)
	assert.Contains(t, desc, "required: --workflowInstanceId")
}

func TestNewRegistryRejectsMalformedDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *EndpointDefinition)
		defs   func() []EndpointDefinition
		errMsg string
	}{
		{
			name:   "duplicate action token",
			mutate: func(d *EndpointDefinition) { d.Variants[1].Action = "all" },
			errMsg: "declared twice",
		},
		{
			name:   "position gap",
			mutate: func(d *EndpointDefinition) { d.Variants[0].Parameters[4].Position = 7 },
			errMsg: "invalid or duplicate position",
		},
		{
			name:   "duplicate position",
			mutate: func(d *EndpointDefinition) { d.Variants[0].Parameters[1].Position = 0 },
			errMsg: "invalid or duplicate position",
		},
		{
			name: "flag kind conflict",
			mutate: func(d *EndpointDefinition) {
				d.Variants[1].Parameters[0].Flag = "pageIndex"
				d.Variants[1].Parameters[0].Kind = KindString
			},
			errMsg: "declared as both",
		},
		{
			name: "shorthand collision",
			mutate: func(d *EndpointDefinition) {
				d.Variants[0].Parameters[0].Short = "s"
				d.Variants[0].Parameters[3].Short = "s"
			},
			errMsg: "used by both",
		},
		{
			name:   "help shorthand",
			mutate: func(d *EndpointDefinition) { d.Variants[1].Parameters[0].Short = "h" },
			errMsg: "invalid shorthand",
		},
		{
			name:   "unknown kind",
			mutate: func(d *EndpointDefinition) { d.Variants[0].Parameters[0].Kind = "float" },
			errMsg: "unknown kind",
		},
		{
			name:   "missing example",
			mutate: func(d *EndpointDefinition) { d.Variants[0].Example = "" },
			errMsg: "description and example are required",
		},
		{
			name:   "empty description",
			mutate: func(d *EndpointDefinition) { d.Description = " " },
			errMsg: "description is empty",
		},
		{
			name:   "no variants",
			mutate: func(d *EndpointDefinition) { d.Variants = nil },
			errMsg: "no variants",
		},
		{
			name:   "bad endpoint name",
			mutate: func(d *EndpointDefinition) { d.Name = "Workflow-Instances" },
			errMsg: "snake_case",
		},
		{
			name:   "duplicate endpoint",
			defs:   func() []EndpointDefinition { return []EndpointDefinition{milestones(), milestones()} },
			errMsg: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var defs []EndpointDefinition
			if tt.defs != nil {
				defs = tt.defs()
			} else {
				def := workflowInstances()
				tt.mutate(&def)
				defs = []EndpointDefinition{def}
			}

			_, err := NewRegistry(defs...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFlagsIsDeduplicatedUnion(t *testing.T) {
	def := milestones()
	flags := def.Flags()

	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, f.Flag)
	}
	assert.Equal(t, []string{"systemId", "poamId"}, names)
}

func TestResolve(t *testing.T) {
	def := workflowInstances()

	v, err := Resolve(&def, "byInstanceId")
	require.NoError(t, err)
	assert.Equal(t, "byInstanceId", v.Action)

	tests := []struct {
		name   string
		action string
		want   error
	}{
		{name: "empty token", action: "", want: ErrMissingAction},
		{name: "unknown token", action: "everything", want: ErrActionNotFound},
		{name: "case differs", action: "ALL", want: ErrActionNotFound},
		{name: "prefix only", action: "byInstance", want: ErrActionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&def, tt.action)
			require.ErrorIs(t, err, tt.want)

			var resolveErr *ResolveError
			require.True(t, errors.As(err, &resolveErr))
			assert.Equal(t, "workflow_instances", resolveErr.Endpoint)
		})
	}
}

func TestUsageHintListsEveryActionOnce(t *testing.T) {
	for _, def := range []EndpointDefinition{workflowInstances(), milestones()} {
		t.Run(def.Name, func(t *testing.T) {
			hint := UsageHint("saf emasser get", &def)
			for _, action := range def.Actions() {
				line := "saf emasser get " + def.Name + " " + action + "\n"
				assert.Equal(t, 1, strings.Count(hint+"\n", line), "action %s", action)
			}
			assert.Equal(t, len(def.Variants)+1, strings.Count(hint, "saf emasser get "))
		})
	}
}

func TestBindWorkflowInstancesAll(t *testing.T) {
	def := workflowInstances()
	v, err := Resolve(&def, "all")
	require.NoError(t, err)

	args, err := Bind(v, map[string]any{"includeComments": true})
	require.NoError(t, err)

	assert.Equal(t, []any{true, nil, nil, nil, nil}, args.Values())
	names := make([]string, 0, len(args))
	for _, a := range args {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"includeComments", "includeDecommissionSystems", "pageIndex", "sinceDate", "status"}, names)
}

func TestBindFullySuppliedPreservesDeclaredOrder(t *testing.T) {
	def := milestones()
	supplied := map[string]any{"systemId": 10, "poamId": 20}

	forward, err := Bind(&def.Variants[0], supplied)
	require.NoError(t, err)
	reversed, err := Bind(&def.Variants[1], supplied)
	require.NoError(t, err)

	assert.Equal(t, []any{10, 20}, forward.Values())
	assert.Equal(t, []any{20, 10}, reversed.Values())
}

func TestBindOrdersByPositionNotSliceOrder(t *testing.T) {
	v := VariantDefinition{
		Action: "x",
		Parameters: []ParameterSpec{
			{Flag: "second", Kind: KindString, Position: 1},
			{Flag: "first", Kind: KindString, Position: 0},
		},
	}
	args, err := Bind(&v, map[string]any{"first": "a", "second": "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, args.Values())
}

func TestBindMissingRequired(t *testing.T) {
	def := milestones()

	_, err := Bind(&def.Variants[0], map[string]any{"systemId": 1})
	require.ErrorIs(t, err, ErrMissingRequiredParameter)

	var missing *MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "poamId", missing.Flag)
}

func TestBindRejectsWrongKind(t *testing.T) {
	def := workflowInstances()
	_, err := Bind(&def.Variants[0], map[string]any{"pageIndex": "three"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pageIndex expects a int value")
}

func TestArgsAccessors(t *testing.T) {
	args := Args{
		{Name: "s", Value: "x", Present: true},
		{Name: "b", Value: false, Present: true},
		{Name: "n", Value: 3, Present: true},
		{Name: "l", Value: []string{"AC-1", "AC-2"}, Present: true},
		{Name: "absent"},
	}

	assert.Equal(t, "x", args.String("s"))
	require.NotNil(t, args.BoolPtr("b"))
	assert.False(t, *args.BoolPtr("b"))
	require.NotNil(t, args.IntPtr("n"))
	assert.Equal(t, 3, *args.IntPtr("n"))
	assert.Equal(t, []string{"AC-1", "AC-2"}, args.Strings("l"))

	assert.Empty(t, args.String("absent"))
	assert.Nil(t, args.BoolPtr("absent"))
	assert.Nil(t, args.IntPtr("missing"))
}

func TestRunNeverInvokesOnValidationFailure(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "unknown endpoint", req: Request{Endpoint: "nope", Action: "all"}, want: ErrUnknownEndpoint},
		{name: "missing action", req: Request{Endpoint: "workflow_instances"}, want: ErrMissingAction},
		{name: "unknown action", req: Request{Endpoint: "workflow_instances", Action: "some"}, want: ErrActionNotFound},
		{
			name: "missing required",
			req:  Request{Endpoint: "workflow_instances", Action: "byInstanceId", Flags: map[string]any{}},
			want: ErrMissingRequiredParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &countingInvoker{}
			_, err := Run(context.Background(), r, inv, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, inv.calls)
		})
	}
}

func TestRunInvokesWithBoundArgs(t *testing.T) {
	r := testRegistry(t)
	inv := &countingInvoker{}

	outcome, err := Run(context.Background(), r, inv, Request{
		Endpoint: "workflow_instances",
		Action:   "byInstanceId",
		Flags:    map[string]any{"workflowInstanceId": 42},
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK())
	assert.Equal(t, "Workflow Instances", outcome.Label)
	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, []any{42}, inv.args.Values())
}

func TestEndpointHintListsEveryEndpoint(t *testing.T) {
	r := testRegistry(t)

	hint := EndpointHint("saf emasser get", r)
	assert.True(t, strings.HasPrefix(hint, "Unknown endpoint\n"))
	for _, name := range r.Names() {
		assert.Equal(t, 1, strings.Count(hint, "\tsaf emasser get "+name+"\n"), name)
	}
}

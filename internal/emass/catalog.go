package emass

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"sort"

	"github.com/secureonelabs/saf/internal/endpoint"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Endpoints []endpoint.EndpointDefinition `yaml:"endpoints"`
}

// caller performs the remote call of one variant. It is the only place where
// bound Args are turned into a query record.
type caller func(ctx context.Context, c *Client, args endpoint.Args) (any, error)

func callerKey(endpointName, action string) string {
	return endpointName + "/" + action
}

// callers maps "endpoint/action" to the client method behind it. Required
// parameters are guaranteed present by endpoint.Bind.
var callers = map[string]caller{
	"test/connection": func(ctx context.Context, c *Client, _ endpoint.Args) (any, error) {
		return c.TestConnection(ctx)
	},
	"system/byId": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetSystem(ctx, intArg(a, "systemId"), SystemQuery{
			IncludePackage: a.BoolPtr("includePackage"),
			Policy:         a.String("policy"),
		})
	},
	"systems/all": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.ListSystems(ctx, SystemsQuery{
			IncludePackage:        a.BoolPtr("includePackage"),
			RegistrationType:      a.String("registrationType"),
			DitprID:               a.String("ditprId"),
			CoamsID:               a.String("coamsId"),
			Policy:                a.String("policy"),
			IncludeDitprMetrics:   a.BoolPtr("includeDitprMetrics"),
			IncludeDecommissioned: a.BoolPtr("includeDecommissioned"),
			ReportsForScorecard:   a.BoolPtr("reportsForScorecard"),
		})
	},
	"roles/all": func(ctx context.Context, c *Client, _ endpoint.Args) (any, error) {
		return c.ListRoleCategories(ctx)
	},
	"roles/byCategory": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetRolesByCategory(ctx, RolesQuery{
			RoleCategory: a.String("roleCategory"),
			Role:         a.String("role"),
			Policy:       a.String("policy"),
		})
	},
	"controls/forSystem": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetControls(ctx, intArg(a, "systemId"), a.Strings("acronyms"))
	},
	"test_results/forSystem": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetTestResults(ctx, intArg(a, "systemId"), TestResultsQuery{
			ControlAcronyms:      a.Strings("controlAcronyms"),
			AssessmentProcedures: a.Strings("assessmentProcedures"),
			Ccis:                 a.Strings("ccis"),
			LatestOnly:           a.BoolPtr("latestOnly"),
		})
	},
	"poams/forSystem": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetPoams(ctx, intArg(a, "systemId"), PoamsQuery{
			ScheduledCompletionDateStart: a.String("scheduledCompletionDateStart"),
			ScheduledCompletionDateEnd:   a.String("scheduledCompletionDateEnd"),
			ControlAcronyms:              a.Strings("controlAcronyms"),
			AssessmentProcedures:         a.Strings("assessmentProcedures"),
			Ccis:                         a.Strings("ccis"),
			SystemOnly:                   a.BoolPtr("systemOnly"),
		})
	},
	"poams/byPoamId": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetPoam(ctx, intArg(a, "systemId"), intArg(a, "poamId"))
	},
	"milestones/byPoamId": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetMilestones(ctx, intArg(a, "systemId"), intArg(a, "poamId"), MilestonesQuery{
			ScheduledCompletionDateStart: a.String("scheduledCompletionDateStart"),
			ScheduledCompletionDateEnd:   a.String("scheduledCompletionDateEnd"),
		})
	},
	"milestones/byMilestoneId": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetMilestone(ctx, intArg(a, "systemId"), intArg(a, "poamId"), intArg(a, "milestoneId"))
	},
	"artifacts/forSystem": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetArtifacts(ctx, intArg(a, "systemId"), ArtifactsQuery{
			Filename:             a.String("filename"),
			ControlAcronyms:      a.Strings("controlAcronyms"),
			AssessmentProcedures: a.Strings("assessmentProcedures"),
			Ccis:                 a.Strings("ccis"),
			SystemOnly:           a.BoolPtr("systemOnly"),
		})
	},
	"artifacts/export": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.ExportArtifact(ctx, intArg(a, "systemId"), ArtifactExportQuery{
			Filename: a.String("filename"),
			Compress: a.BoolPtr("compress"),
		})
	},
	"cac/controls": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetCAC(ctx, intArg(a, "systemId"), a.Strings("controlAcronyms"))
	},
	"pac/package": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetPAC(ctx, intArg(a, "systemId"))
	},
	"hardware/baseline": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetHardwareBaseline(ctx, intArg(a, "systemId"), pageQuery(a))
	},
	"software/baseline": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetSoftwareBaseline(ctx, intArg(a, "systemId"), pageQuery(a))
	},
	"workflow_definitions/all": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.ListWorkflowDefinitions(ctx, WorkflowDefinitionsQuery{
			IncludeInactive:  a.BoolPtr("includeInactive"),
			RegistrationType: a.String("registrationType"),
		})
	},
	"workflow_instances/all": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.ListWorkflowInstances(ctx, WorkflowInstancesQuery{
			IncludeComments:            a.BoolPtr("includeComments"),
			IncludeDecommissionSystems: a.BoolPtr("includeDecommissionSystems"),
			PageIndex:                  a.IntPtr("pageIndex"),
			SinceDate:                  a.String("sinceDate"),
			Status:                     a.String("status"),
		})
	},
	"workflow_instances/byInstanceId": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetWorkflowInstance(ctx, intArg(a, "workflowInstanceId"))
	},
	"cmmc/assessments": func(ctx context.Context, c *Client, a endpoint.Args) (any, error) {
		return c.GetCMMCAssessments(ctx, a.String("sinceDate"))
	},
}

func intArg(a endpoint.Args, name string) int {
	if n := a.IntPtr(name); n != nil {
		return *n
	}
	return 0
}

func pageQuery(a endpoint.Args) PageQuery {
	return PageQuery{
		PageIndex: a.IntPtr("pageIndex"),
		PageSize:  a.IntPtr("pageSize"),
	}
}

// LoadRegistry builds the endpoint registry from the embedded catalog.
func LoadRegistry() (*endpoint.Registry, error) {
	return loadRegistry(catalogYAML, callers)
}

// loadRegistry decodes a catalog, assigns parameter positions from list order
// and checks that the catalog and the caller table describe the same variants.
func loadRegistry(data []byte, table map[string]caller) (*endpoint.Registry, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse endpoint catalog: %w", err)
	}

	wired := make(map[string]bool, len(table))
	for i := range file.Endpoints {
		def := &file.Endpoints[i]
		for j := range def.Variants {
			v := &def.Variants[j]
			for k := range v.Parameters {
				v.Parameters[k].Position = k
			}

			key := callerKey(def.Name, v.Action)
			if _, ok := table[key]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrNoCaller, key)
			}
			wired[key] = true
		}
	}

	var stale []string
	for key := range table {
		if !wired[key] {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		sort.Strings(stale)
		return nil, fmt.Errorf("callers without catalog entry: %v", stale)
	}

	return endpoint.NewRegistry(file.Endpoints...)
}

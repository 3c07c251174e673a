package emass

import "context"

// Query records hold the optional filters of one remote call by name. Nil
// pointers, empty strings and empty lists are left out of the request.

// SystemQuery filters GET /api/systems/{systemId}.
type SystemQuery struct {
	IncludePackage *bool
	Policy         string
}

// SystemsQuery filters GET /api/systems.
type SystemsQuery struct {
	IncludePackage        *bool
	RegistrationType      string
	DitprID               string
	CoamsID               string
	Policy                string
	IncludeDitprMetrics   *bool
	IncludeDecommissioned *bool
	ReportsForScorecard   *bool
}

// RolesQuery selects GET /api/system-roles/{roleCategory}.
type RolesQuery struct {
	RoleCategory string
	Role         string
	Policy       string
}

// TestResultsQuery filters GET /api/systems/{systemId}/test-results.
type TestResultsQuery struct {
	ControlAcronyms      []string
	AssessmentProcedures []string
	Ccis                 []string
	LatestOnly           *bool
}

// PoamsQuery filters GET /api/systems/{systemId}/poams.
type PoamsQuery struct {
	ScheduledCompletionDateStart string
	ScheduledCompletionDateEnd   string
	ControlAcronyms              []string
	AssessmentProcedures         []string
	Ccis                         []string
	SystemOnly                   *bool
}

// MilestonesQuery filters GET /api/systems/{systemId}/poams/{poamId}/milestones.
type MilestonesQuery struct {
	ScheduledCompletionDateStart string
	ScheduledCompletionDateEnd   string
}

// ArtifactsQuery filters GET /api/systems/{systemId}/artifacts.
type ArtifactsQuery struct {
	Filename             string
	ControlAcronyms      []string
	AssessmentProcedures []string
	Ccis                 []string
	SystemOnly           *bool
}

// ArtifactExportQuery selects GET /api/systems/{systemId}/artifacts-export.
type ArtifactExportQuery struct {
	Filename string
	Compress *bool
}

// PageQuery pages through baseline inventories.
type PageQuery struct {
	PageIndex *int
	PageSize  *int
}

// WorkflowDefinitionsQuery filters GET /api/workflows/definitions.
type WorkflowDefinitionsQuery struct {
	IncludeInactive  *bool
	RegistrationType string
}

// WorkflowInstancesQuery filters GET /api/workflows/instances.
type WorkflowInstancesQuery struct {
	IncludeComments            *bool
	IncludeDecommissionSystems *bool
	PageIndex                  *int
	SinceDate                  string
	Status                     string
}

func system(systemID int) map[string]string {
	return map[string]string{"systemId": pathID(systemID)}
}

// TestConnection checks that the API is reachable with the configured credentials.
func (c *Client) TestConnection(ctx context.Context) (any, error) {
	return c.get(ctx, "/api", nil, newQuery())
}

// GetSystem returns one system record.
func (c *Client) GetSystem(ctx context.Context, systemID int, q SystemQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}", system(systemID), newQuery().
		boolean("includePackage", q.IncludePackage).
		str("policy", q.Policy))
}

// ListSystems returns every system visible to the user.
func (c *Client) ListSystems(ctx context.Context, q SystemsQuery) (any, error) {
	return c.get(ctx, "/api/systems", nil, newQuery().
		boolean("includePackage", q.IncludePackage).
		str("registrationType", q.RegistrationType).
		str("ditprId", q.DitprID).
		str("coamsId", q.CoamsID).
		str("policy", q.Policy).
		boolean("includeDitprMetrics", q.IncludeDitprMetrics).
		boolean("includeDecommissioned", q.IncludeDecommissioned).
		boolean("reportsForScorecard", q.ReportsForScorecard))
}

// ListRoleCategories returns the available system role categories.
func (c *Client) ListRoleCategories(ctx context.Context) (any, error) {
	return c.get(ctx, "/api/system-roles", nil, newQuery())
}

// GetRolesByCategory returns the role assignments of one category.
func (c *Client) GetRolesByCategory(ctx context.Context, q RolesQuery) (any, error) {
	return c.get(ctx, "/api/system-roles/{roleCategory}",
		map[string]string{"roleCategory": q.RoleCategory},
		newQuery().
			str("role", q.Role).
			str("policy", q.Policy))
}

// GetControls returns a system's security controls.
func (c *Client) GetControls(ctx context.Context, systemID int, acronyms []string) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/controls", system(systemID), newQuery().
		list("acronyms", acronyms))
}

// GetTestResults returns a system's test results.
func (c *Client) GetTestResults(ctx context.Context, systemID int, q TestResultsQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/test-results", system(systemID), newQuery().
		list("controlAcronyms", q.ControlAcronyms).
		list("assessmentProcedures", q.AssessmentProcedures).
		list("ccis", q.Ccis).
		boolean("latestOnly", q.LatestOnly))
}

// GetPoams returns a system's plans of action and milestones.
func (c *Client) GetPoams(ctx context.Context, systemID int, q PoamsQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/poams", system(systemID), newQuery().
		str("scheduledCompletionDateStart", q.ScheduledCompletionDateStart).
		str("scheduledCompletionDateEnd", q.ScheduledCompletionDateEnd).
		list("controlAcronyms", q.ControlAcronyms).
		list("assessmentProcedures", q.AssessmentProcedures).
		list("ccis", q.Ccis).
		boolean("systemOnly", q.SystemOnly))
}

// GetPoam returns one POA&M.
func (c *Client) GetPoam(ctx context.Context, systemID, poamID int) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/poams/{poamId}", map[string]string{
		"systemId": pathID(systemID),
		"poamId":   pathID(poamID),
	}, newQuery())
}

// GetMilestones returns the milestones of one POA&M.
func (c *Client) GetMilestones(ctx context.Context, systemID, poamID int, q MilestonesQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/poams/{poamId}/milestones", map[string]string{
		"systemId": pathID(systemID),
		"poamId":   pathID(poamID),
	}, newQuery().
		str("scheduledCompletionDateStart", q.ScheduledCompletionDateStart).
		str("scheduledCompletionDateEnd", q.ScheduledCompletionDateEnd))
}

// GetMilestone returns one milestone.
func (c *Client) GetMilestone(ctx context.Context, systemID, poamID, milestoneID int) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/poams/{poamId}/milestones/{milestoneId}", map[string]string{
		"systemId":    pathID(systemID),
		"poamId":      pathID(poamID),
		"milestoneId": pathID(milestoneID),
	}, newQuery())
}

// GetArtifacts returns artifact metadata for a system.
func (c *Client) GetArtifacts(ctx context.Context, systemID int, q ArtifactsQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/artifacts", system(systemID), newQuery().
		str("filename", q.Filename).
		list("controlAcronyms", q.ControlAcronyms).
		list("assessmentProcedures", q.AssessmentProcedures).
		list("ccis", q.Ccis).
		boolean("systemOnly", q.SystemOnly))
}

// ExportArtifact downloads one artifact. Non-JSON content is returned as text.
func (c *Client) ExportArtifact(ctx context.Context, systemID int, q ArtifactExportQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/artifacts-export", system(systemID), newQuery().
		str("filename", q.Filename).
		boolean("compress", q.Compress))
}

// GetCAC returns the control approval chain for a system.
func (c *Client) GetCAC(ctx context.Context, systemID int, controlAcronyms []string) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/approval/cac", system(systemID), newQuery().
		list("controlAcronyms", controlAcronyms))
}

// GetPAC returns the package approval chain for a system.
func (c *Client) GetPAC(ctx context.Context, systemID int) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/approval/pac", system(systemID), newQuery())
}

// GetHardwareBaseline returns a system's hardware inventory.
func (c *Client) GetHardwareBaseline(ctx context.Context, systemID int, q PageQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/hw-baseline", system(systemID), newQuery().
		integer("pageIndex", q.PageIndex).
		integer("pageSize", q.PageSize))
}

// GetSoftwareBaseline returns a system's software inventory.
func (c *Client) GetSoftwareBaseline(ctx context.Context, systemID int, q PageQuery) (any, error) {
	return c.get(ctx, "/api/systems/{systemId}/sw-baseline", system(systemID), newQuery().
		integer("pageIndex", q.PageIndex).
		integer("pageSize", q.PageSize))
}

// ListWorkflowDefinitions returns workflow definitions.
func (c *Client) ListWorkflowDefinitions(ctx context.Context, q WorkflowDefinitionsQuery) (any, error) {
	return c.get(ctx, "/api/workflows/definitions", nil, newQuery().
		boolean("includeInactive", q.IncludeInactive).
		str("registrationType", q.RegistrationType))
}

// ListWorkflowInstances returns workflow instances across systems.
func (c *Client) ListWorkflowInstances(ctx context.Context, q WorkflowInstancesQuery) (any, error) {
	return c.get(ctx, "/api/workflows/instances", nil, newQuery().
		boolean("includeComments", q.IncludeComments).
		boolean("includeDecommissionSystems", q.IncludeDecommissionSystems).
		integer("pageIndex", q.PageIndex).
		str("sinceDate", q.SinceDate).
		str("status", q.Status))
}

// GetWorkflowInstance returns one workflow instance.
func (c *Client) GetWorkflowInstance(ctx context.Context, workflowInstanceID int) (any, error) {
	return c.get(ctx, "/api/workflows/instances/{workflowInstanceId}",
		map[string]string{"workflowInstanceId": pathID(workflowInstanceID)}, newQuery())
}

// GetCMMCAssessments returns CMMC assessment records updated since sinceDate.
func (c *Client) GetCMMCAssessments(ctx context.Context, sinceDate string) (any, error) {
	return c.get(ctx, "/api/cmmc-assessments", nil, newQuery().
		str("sinceDate", sinceDate))
}

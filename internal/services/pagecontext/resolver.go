// File: internal/services/pagecontext/resolver.go
package pagecontext

import "github.com/nexsuite/chatorb/internal/domain"

// Resolver maps a navigation path to its static display bundle. It is a total
// function: any unknown path resolves to the dashboard bundle.
type Resolver struct {
	contexts map[string]domain.PageContext
	fallback domain.PageContext
}

func NewResolver() *Resolver {
	dashboard := domain.PageContext{
		PageName:    "Dashboard",
		Description: "Overview of your workspace activity and key metrics.",
		Suggestions: []string{
			"Summarize today's activity",
			"What needs my attention?",
			"Show my open tasks",
		},
		RecentActions: []string{
			"Viewed the dashboard",
		},
	}

	return &Resolver{
		fallback: dashboard,
		contexts: map[string]domain.PageContext{
			"/": dashboard,
			"/crm": {
				PageName:    "CRM",
				Description: "Manage leads, deals and customer relationships.",
				Suggestions: []string{
					"Which deals are closing this month?",
					"Draft a follow-up email for a lead",
					"Summarize my pipeline",
				},
				RecentActions: []string{
					"Opened the deals board",
					"Filtered leads by owner",
				},
			},
			"/hr": {
				PageName:    "HR",
				Description: "Employee records, leave requests and training programs.",
				Suggestions: []string{
					"Who is on leave this week?",
					"List pending leave requests",
					"Show upcoming training sessions",
				},
				RecentActions: []string{
					"Viewed the employee directory",
				},
			},
			"/workflows": {
				PageName:    "Workflows",
				Description: "Automation rules and approval chains.",
				Suggestions: []string{
					"Which workflows failed recently?",
					"Explain this approval chain",
					"Create a reminder automation",
				},
				RecentActions: []string{
					"Edited an approval workflow",
				},
			},
			"/analytics": {
				PageName:    "Analytics",
				Description: "Reports and performance dashboards.",
				Suggestions: []string{
					"Compare revenue to last quarter",
					"Export the sales report",
					"What changed this week?",
				},
				RecentActions: []string{
					"Ran the quarterly report",
				},
			},
			"/access": {
				PageName:    "Access Management",
				Description: "Users, roles and permission assignments.",
				Suggestions: []string{
					"Who has admin access?",
					"Review recent permission changes",
					"List inactive accounts",
				},
				RecentActions: []string{
					"Viewed the role list",
				},
			},
		},
	}
}

// Resolve returns the bundle for path, or the dashboard bundle when the path
// is unknown. It never fails and never returns an empty bundle.
func (r *Resolver) Resolve(path string) domain.PageContext {
	if ctx, ok := r.contexts[path]; ok {
		return ctx
	}
	return r.fallback
}

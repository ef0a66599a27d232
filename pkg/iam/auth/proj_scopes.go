package auth

import "github.com/0Omaaar/iRecruitApp/pkg/iam/user"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - iRecruit
// ============================================================================

const (
	ScopeAll = "*"

	// Job offer scopes
	ScopeJobOffersAll    = "job-offers:*"
	ScopeJobOffersRead   = "job-offers:read"
	ScopeJobOffersWrite  = "job-offers:write"
	ScopeJobOffersDelete = "job-offers:delete"

	// Application scopes
	ScopeApplicationsAll     = "applications:*"
	ScopeApplicationsRead    = "applications:read"
	ScopeApplicationsWrite   = "applications:write"
	ScopeApplicationsDelete  = "applications:delete"
	ScopeApplicationsApprove = "applications:approve" // Accept/reject applications
	ScopeApplicationsExport  = "applications:export"  // Export a tranche to XLSX
	ScopeApplicationsApply   = "applications:apply"   // Submit one's own application

	// Session and tranche scopes
	ScopeSessionsAll   = "sessions:*"
	ScopeSessionsRead  = "sessions:read"
	ScopeSessionsWrite = "sessions:write"
	ScopeTranchesAll   = "tranches:*"
	ScopeTranchesRead  = "tranches:read"
	ScopeTranchesWrite = "tranches:write"
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"JobOffers": {
		ScopeJobOffersAll,
		ScopeJobOffersRead,
		ScopeJobOffersWrite,
		ScopeJobOffersDelete,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsDelete,
		ScopeApplicationsApprove,
		ScopeApplicationsExport,
		ScopeApplicationsApply,
	},
	"Sessions": {
		ScopeSessionsAll,
		ScopeSessionsRead,
		ScopeSessionsWrite,
	},
	"Tranches": {
		ScopeTranchesAll,
		ScopeTranchesRead,
		ScopeTranchesWrite,
	},
}

// DomainScopeDescriptions provides descriptions for domain scopes
var DomainScopeDescriptions = map[string]string{
	ScopeJobOffersAll:    "Full access to job offers",
	ScopeJobOffersRead:   "View job offers",
	ScopeJobOffersWrite:  "Create and edit job offers",
	ScopeJobOffersDelete: "Delete job offers",

	ScopeApplicationsAll:     "Full access to applications",
	ScopeApplicationsRead:    "View applications and candidate profiles",
	ScopeApplicationsWrite:   "Edit applications",
	ScopeApplicationsDelete:  "Delete applications",
	ScopeApplicationsApprove: "Accept or reject applications",
	ScopeApplicationsExport:  "Export tranche applications",
	ScopeApplicationsApply:   "Apply to a tranche",

	ScopeSessionsAll:   "Full access to sessions",
	ScopeSessionsRead:  "View sessions",
	ScopeSessionsWrite: "Create sessions",
	ScopeTranchesAll:   "Full access to tranches",
	ScopeTranchesRead:  "View tranches",
	ScopeTranchesWrite: "Create, open and close tranches",
}

// RoleScopes maps each account role to the scopes put in its tokens
var RoleScopes = map[user.Role][]string{
	user.RoleAdmin: {
		ScopeAll,
	},
	user.RoleRecruiter: {
		ScopeJobOffersAll,
		ScopeApplicationsRead,
		ScopeApplicationsApprove,
		ScopeApplicationsExport,
		ScopeSessionsRead,
		ScopeTranchesAll,
	},
	user.RoleCandidate: {
		ScopeJobOffersRead,
		ScopeApplicationsApply,
		ScopeSessionsRead,
		ScopeTranchesRead,
	},
}

// ScopesForRole returns a copy of the role's scopes
func ScopesForRole(r user.Role) []string {
	return append([]string(nil), RoleScopes[r]...)
}

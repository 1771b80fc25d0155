package domain

// Permission predicates over (role, department). These are the single
// source of truth for domain gating: the assistant's route table and the
// CRUD services both consult them.

// CanManageEmployees allows employee record mutations and termination.
func (a Actor) CanManageEmployees() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR
}

// CanManageCandidates allows recruiting pipeline mutations.
func (a Actor) CanManageCandidates() bool {
	if a.Role == RoleAdmin || a.Role == RoleHR || a.Role == RoleRecruiter {
		return true
	}
	return a.Role == RoleManager && a.Department == DepartmentRecruiting
}

// CanManageTeam allows team-scoped actions: PTO decisions, reviews,
// equipment assignment, document management.
func (a Actor) CanManageTeam() bool {
	return a.Role == RoleAdmin || a.Role == RoleHR || a.Role == RoleManager
}

// CanManageAgents allows sales-agent administration: territories and
// commission contracts.
func (a Actor) CanManageAgents() bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.Role == RoleManager && a.Department == DepartmentSales
}

// CanViewOwnData always holds: any authenticated actor may read their
// own records.
func (a Actor) CanViewOwnData() bool {
	return true
}

// CanRequestPTO holds for actors still employed.
func (a Actor) CanRequestPTO() bool {
	return a.Status != EmploymentTerminated
}

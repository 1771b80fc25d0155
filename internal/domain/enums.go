package domain

// Role is the access role assigned to an employee account.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHR        Role = "HR"
	RoleManager   Role = "MANAGER"
	RoleRecruiter Role = "RECRUITER"
	RoleAgent     Role = "AGENT"
	RoleEmployee  Role = "EMPLOYEE"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleRecruiter, RoleAgent, RoleEmployee:
		return true
	}
	return false
}

// Department groups employees by business area.
type Department string

const (
	DepartmentSales      Department = "SALES"
	DepartmentProduction Department = "PRODUCTION"
	DepartmentOffice     Department = "OFFICE"
	DepartmentRecruiting Department = "RECRUITING"
	DepartmentHR         Department = "HR"
)

func (d Department) String() string { return string(d) }

func (d Department) IsValid() bool {
	switch d {
	case DepartmentSales, DepartmentProduction, DepartmentOffice, DepartmentRecruiting, DepartmentHR:
		return true
	}
	return false
}

// EmploymentStatus is the lifecycle state of an employee record.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "ACTIVE"
	EmploymentOnLeave    EmploymentStatus = "ON_LEAVE"
	EmploymentTerminated EmploymentStatus = "TERMINATED"
)

func (s EmploymentStatus) String() string { return string(s) }

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentActive, EmploymentOnLeave, EmploymentTerminated:
		return true
	}
	return false
}

// PipelineStage is a candidate's position in the recruiting pipeline.
type PipelineStage string

const (
	StageApplied   PipelineStage = "APPLIED"
	StageScreening PipelineStage = "SCREENING"
	StageInterview PipelineStage = "INTERVIEW"
	StageOffer     PipelineStage = "OFFER"
	StageHired     PipelineStage = "HIRED"
	StageRejected  PipelineStage = "REJECTED"
)

func (s PipelineStage) String() string { return string(s) }

func (s PipelineStage) IsValid() bool {
	switch s {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

// PTOStatus is the approval state of a PTO request.
type PTOStatus string

const (
	PTOPending   PTOStatus = "PENDING"
	PTOApproved  PTOStatus = "APPROVED"
	PTODenied    PTOStatus = "DENIED"
	PTOCancelled PTOStatus = "CANCELLED"
)

func (s PTOStatus) String() string { return string(s) }

func (s PTOStatus) IsValid() bool {
	switch s {
	case PTOPending, PTOApproved, PTODenied, PTOCancelled:
		return true
	}
	return false
}

// PTOType classifies time-off requests.
type PTOType string

const (
	PTOVacation PTOType = "VACATION"
	PTOSick     PTOType = "SICK"
	PTOPersonal PTOType = "PERSONAL"
	PTOUnpaid   PTOType = "UNPAID"
)

func (t PTOType) String() string { return string(t) }

func (t PTOType) IsValid() bool {
	switch t {
	case PTOVacation, PTOSick, PTOPersonal, PTOUnpaid:
		return true
	}
	return false
}

// ToolStatus tracks where a piece of company equipment is.
type ToolStatus string

const (
	ToolAvailable   ToolStatus = "AVAILABLE"
	ToolAssigned    ToolStatus = "ASSIGNED"
	ToolMaintenance ToolStatus = "MAINTENANCE"
	ToolLost        ToolStatus = "LOST"
	ToolRetired     ToolStatus = "RETIRED"
)

func (s ToolStatus) String() string { return string(s) }

func (s ToolStatus) IsValid() bool {
	switch s {
	case ToolAvailable, ToolAssigned, ToolMaintenance, ToolLost, ToolRetired:
		return true
	}
	return false
}

// ContractStatus is the signature lifecycle of a contract.
type ContractStatus string

const (
	ContractDraft  ContractStatus = "DRAFT"
	ContractSent   ContractStatus = "SENT"
	ContractSigned ContractStatus = "SIGNED"
	ContractVoided ContractStatus = "VOIDED"
)

func (s ContractStatus) String() string { return string(s) }

func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractDraft, ContractSent, ContractSigned, ContractVoided:
		return true
	}
	return false
}

// ContractType classifies contracts issued by the company.
type ContractType string

const (
	ContractEmployment    ContractType = "EMPLOYMENT"
	ContractSubcontractor ContractType = "SUBCONTRACTOR"
	ContractCommission    ContractType = "COMMISSION"
)

func (t ContractType) String() string { return string(t) }

func (t ContractType) IsValid() bool {
	switch t {
	case ContractEmployment, ContractSubcontractor, ContractCommission:
		return true
	}
	return false
}

// ReviewStatus is the state of a performance review.
type ReviewStatus string

const (
	ReviewScheduled ReviewStatus = "SCHEDULED"
	ReviewCompleted ReviewStatus = "COMPLETED"
)

func (s ReviewStatus) String() string { return string(s) }

func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewScheduled, ReviewCompleted:
		return true
	}
	return false
}

// DocumentType classifies employee documents.
type DocumentType string

const (
	DocumentW4            DocumentType = "W4"
	DocumentI9            DocumentType = "I9"
	DocumentCertification DocumentType = "CERTIFICATION"
	DocumentLicense       DocumentType = "LICENSE"
	DocumentHandbookAck   DocumentType = "HANDBOOK_ACK"
	DocumentOther         DocumentType = "OTHER"
)

func (t DocumentType) String() string { return string(t) }

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentW4, DocumentI9, DocumentCertification, DocumentLicense, DocumentHandbookAck, DocumentOther:
		return true
	}
	return false
}

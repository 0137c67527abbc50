// Package enums holds the enumerated value sets shared between request
// validation and list-filter parsing. Each set is defined exactly once so the
// two layers cannot drift apart.
package enums

const (
	RoleAdmin          = "admin"
	RoleDepartmentHead = "department-head"
	RoleMember         = "member"

	DepartmentIT          = "it"
	DepartmentEvents      = "events"
	DepartmentSocialMedia = "social-media"
	DepartmentDesign      = "design"
	DepartmentExtern      = "extern"

	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"

	EventStatusDraft     = "draft"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAllLevels    = "all-levels"

	RegistrationStatusRegistered = "registered"
	RegistrationStatusAttended   = "attended"
	RegistrationStatusCancelled  = "cancelled"

	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"

	AudienceAll        = "all"
	AudienceDepartment = "department"
	AudienceAdmins     = "admins"
)

var (
	Roles       = []string{RoleAdmin, RoleDepartmentHead, RoleMember}
	Departments = []string{DepartmentIT, DepartmentEvents, DepartmentSocialMedia, DepartmentDesign, DepartmentExtern}

	AcademicYears = []string{"1", "2", "3", "4", "5", "master", "phd", "faculty"}

	ApplicationStatuses  = []string{ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected}
	EventStatuses        = []string{EventStatusDraft, EventStatusActive, EventStatusCompleted, EventStatusCancelled}
	EventDifficulties    = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyAllLevels}
	RegistrationStatuses = []string{RegistrationStatusRegistered, RegistrationStatusAttended, RegistrationStatusCancelled}
	TaskStatuses         = []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
	TaskPriorities       = []string{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	Audiences            = []string{AudienceAll, AudienceDepartment, AudienceAdmins}
)

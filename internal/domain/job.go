package domain

import "time"

// JobType enumerates employment arrangements.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
	JobTypeHybrid     JobType = "Hybrid"
)

// JobCategory enumerates posting categories.
type JobCategory string

const (
	CategoryTechnology      JobCategory = "Technology"
	CategoryHealthcare      JobCategory = "Healthcare"
	CategoryFinance         JobCategory = "Finance"
	CategoryMarketing       JobCategory = "Marketing"
	CategorySales           JobCategory = "Sales"
	CategoryEducation       JobCategory = "Education"
	CategoryEngineering     JobCategory = "Engineering"
	CategoryDesign          JobCategory = "Design"
	CategoryCustomerService JobCategory = "Customer Service"
	CategoryHumanResources  JobCategory = "Human Resources"
	CategoryOperations      JobCategory = "Operations"
	CategoryLegal           JobCategory = "Legal"
	CategoryOther           JobCategory = "Other"
)

// ExperienceLevel enumerates required experience for a posting.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "Entry Level"
	ExperienceMid       ExperienceLevel = "Mid Level"
	ExperienceSenior    ExperienceLevel = "Senior Level"
	ExperienceExecutive ExperienceLevel = "Executive"
	ExperienceFresher   ExperienceLevel = "Fresher"
)

// SalaryRange is an optional min/max pair with currency.
type SalaryRange struct {
	Min      *int64
	Max      *int64
	Currency string
}

// DefaultDeadlineDays is applied when a posting carries no explicit deadline.
const DefaultDeadlineDays = 30

// Job is a posting on the board. PostedBy always references a users row.
type Job struct {
	ID                  string
	Title               string
	Company             string
	Location            string
	Type                JobType
	Category            JobCategory
	Experience          ExperienceLevel
	Description         string
	Requirements        string
	Salary              SalaryRange
	IsActive            bool
	Featured            bool
	PostedBy            string
	ApplicationCount    int
	ApplicationDeadline time.Time
	Tags                []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Expired reports whether the application deadline has passed.
func (j *Job) Expired(now time.Time) bool {
	return j.ApplicationDeadline.Before(now)
}

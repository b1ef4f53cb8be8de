package schema

// CompanyQualities are the values, work style and skills a job posting asks for.
type CompanyQualities struct {
	CompanyName     string   `json:"company_name,omitempty"`
	Values          []string `json:"values"`
	WorkStyle       []string `json:"work_style"`
	SoftSkills      []string `json:"soft_skills"`
	PreferredSkills []string `json:"preferred_skills"`
}

// JobMatch compares the skills a job posting names with a project's scored skills.
type JobMatch struct {
	ProjectID string           `json:"project_id"`
	JobSkills []string         `json:"job_skills"`
	Matched   []SkillScore     `json:"matched_skills"`
	Missing   []string         `json:"missing_skills"`
	Coverage  float64          `json:"coverage"` // matched / job skills, 0 when the posting names none
	Company   CompanyQualities `json:"company"`
	Snippet   string           `json:"resume_snippet"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field names one artifact of a tailoring run. Stage descriptors declare
// their inputs and output by Field.
type Field string

const (
	FieldResume                Field = "resume"
	FieldJob                   Field = "job"
	FieldPresence              Field = "presence"
	FieldJobAnalysis           Field = "job_analysis"
	FieldMatchingAnalysis      Field = "matching_analysis"
	FieldSummarySkills         Field = "summary_skills"
	FieldExperienceSection     Field = "experience_section"
	FieldEducationEntries      Field = "education_entries"
	FieldCertificationsEntries Field = "certifications_entries"
	FieldAssembledResume       Field = "assembled_resume"
	FieldOptimizedResume       Field = "optimized_resume"
	FieldTemplate              Field = "template"
	FieldFormattedResume       Field = "formatted_resume"
)

// Run is the pipeline context of a single tailoring request. It is owned by
// one goroutine and never shared between requests.
type Run struct {
	ID        uuid.UUID        `json:"id"`
	StartedAt time.Time        `json:"started_at"`
	Presence  map[string]bool  `json:"presence"`
	Artifacts map[Field]string `json:"artifacts"`
}

func NewRun(resumeText, jobText string) *Run {
	return &Run{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Presence:  map[string]bool{},
		Artifacts: map[Field]string{
			FieldResume: resumeText,
			FieldJob:    jobText,
		},
	}
}

func (r *Run) Get(f Field) string { return r.Artifacts[f] }

func (r *Run) Set(f Field, v string) { r.Artifacts[f] = v }

// Final returns the artifact a caller should receive: the formatted variant
// when the formatting stage ran, otherwise the enforced optimized resume.
func (r *Run) Final() string {
	if v, ok := r.Artifacts[FieldFormattedResume]; ok && v != "" {
		return v
	}
	return r.Artifacts[FieldOptimizedResume]
}

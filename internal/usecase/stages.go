package usecase

import (
	"strings"

	"resumetuner/internal/domain"
	"resumetuner/internal/resume"
	"resumetuner/pkg/ai/prompts"
)

// noneMarker stands in for an absent optional section in assembly input.
const noneMarker = "NONE"

// stageInput is one labelled value copied from the run into a stage input.
type stageInput struct {
	Label string
	Field domain.Field
	// NoneIfEmpty substitutes noneMarker for blank values.
	NoneIfEmpty bool
}

// Stage describes one generation call of the pipeline.
type Stage struct {
	Name        string
	Instruction string
	Inputs      []stageInput
	Output      domain.Field
	AllowEmpty  bool
	Post        func(out string, run *domain.Run) string
}

// Pipeline returns the ordered tailoring stages. Each stage reads only the
// fields it declares, all of which are produced by earlier stages.
func Pipeline(p prompts.Set) []Stage {
	return []Stage{
		{
			Name:        "job_analysis",
			Instruction: p.JobAnalysis,
			Inputs: []stageInput{
				{Label: "Job", Field: domain.FieldJob},
			},
			Output: domain.FieldJobAnalysis,
		},
		{
			Name:        "matching",
			Instruction: p.Matching,
			Inputs: []stageInput{
				{Label: "Resume", Field: domain.FieldResume},
				{Label: "Job Analysis", Field: domain.FieldJobAnalysis},
			},
			Output: domain.FieldMatchingAnalysis,
		},
		{
			Name:        "summary_skills",
			Instruction: p.SummarySkills,
			Inputs: []stageInput{
				{Label: "Resume", Field: domain.FieldResume},
				{Label: "Job Analysis", Field: domain.FieldJobAnalysis},
				{Label: "Matching Analysis", Field: domain.FieldMatchingAnalysis},
			},
			Output: domain.FieldSummarySkills,
		},
		{
			Name:        "experience",
			Instruction: p.Experience,
			Inputs: []stageInput{
				{Label: "Resume", Field: domain.FieldResume},
				{Label: "Job Analysis", Field: domain.FieldJobAnalysis},
				{Label: "Matching Analysis", Field: domain.FieldMatchingAnalysis},
			},
			Output: domain.FieldExperienceSection,
		},
		{
			Name:        "education",
			Instruction: p.Education,
			Inputs: []stageInput{
				{Label: "Resume", Field: domain.FieldResume},
				{Label: "Job Analysis", Field: domain.FieldJobAnalysis},
			},
			Output:     domain.FieldEducationEntries,
			AllowEmpty: true,
		},
		{
			Name:        "certifications",
			Instruction: p.Certifications,
			Inputs: []stageInput{
				{Label: "Resume", Field: domain.FieldResume},
			},
			Output:     domain.FieldCertificationsEntries,
			AllowEmpty: true,
		},
		{
			Name:        "assembly",
			Instruction: p.Assembly,
			Inputs: []stageInput{
				{Label: "Summary and Skills", Field: domain.FieldSummarySkills},
				{Label: "Experience", Field: domain.FieldExperienceSection},
				{Label: "Education", Field: domain.FieldEducationEntries, NoneIfEmpty: true},
				{Label: "Certifications", Field: domain.FieldCertificationsEntries, NoneIfEmpty: true},
				{Label: "Presence Map", Field: domain.FieldPresence},
			},
			Output: domain.FieldAssembledResume,
			Post: func(out string, _ *domain.Run) string {
				return resume.Sanitize(out)
			},
		},
		{
			Name:        "optimization",
			Instruction: p.Optimization,
			Inputs: []stageInput{
				{Label: "Assembled Resume", Field: domain.FieldAssembledResume},
				{Label: "Presence Map", Field: domain.FieldPresence},
				{Label: "Job Analysis", Field: domain.FieldJobAnalysis},
			},
			Output: domain.FieldOptimizedResume,
			Post: func(out string, run *domain.Run) string {
				return resume.Enforce(resume.Sanitize(out), run.Get(domain.FieldResume))
			},
		},
	}
}

// FormattingStage typesets the optimized resume after an example template.
func FormattingStage(p prompts.Set) Stage {
	return Stage{
		Name:        "formatting",
		Instruction: p.Formatting,
		Inputs: []stageInput{
			{Label: "Resume", Field: domain.FieldOptimizedResume},
			{Label: "Example Template", Field: domain.FieldTemplate, NoneIfEmpty: true},
		},
		Output: domain.FieldFormattedResume,
	}
}

// buildInput concatenates the stage's declared inputs as "Label:\nvalue"
// blocks separated by a blank line.
func buildInput(run *domain.Run, inputs []stageInput) string {
	parts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		v := run.Get(in.Field)
		if in.NoneIfEmpty && strings.TrimSpace(v) == "" {
			v = noneMarker
		}
		parts = append(parts, in.Label+":\n"+v)
	}
	return strings.Join(parts, "\n\n")
}

// describePresence renders the presence map in canonical header order.
func describePresence(p resume.Presence) string {
	var sb strings.Builder
	for _, h := range resume.Headers {
		sb.WriteString(string(h))
		if p.Has(h) {
			sb.WriteString(": present\n")
		} else {
			sb.WriteString(": absent\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Package prompts holds the fixed instruction sent with every pipeline
// stage. Defaults are compiled in; a YAML file may override any of them.
package prompts

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Set is one instruction per stage.
type Set struct {
	JobAnalysis    string `yaml:"job_analysis"`
	Matching       string `yaml:"matching"`
	SummarySkills  string `yaml:"summary_skills"`
	Experience     string `yaml:"experience"`
	Education      string `yaml:"education"`
	Certifications string `yaml:"certifications"`
	Assembly       string `yaml:"assembly"`
	Optimization   string `yaml:"optimization"`
	Formatting     string `yaml:"formatting"`
}

const sectionRules = `Use exactly these plain-text section headers, each on its own line, in upper case: SUMMARY, SKILLS, EXPERIENCE, EDUCATION, CERTIFICATIONS, PROJECTS.
Never invent employers, titles, dates, degrees, certifications or projects that are not in the candidate's resume.
Do not add commentary, explanations or Markdown code fences.`

// Default returns the built-in instructions.
func Default() Set {
	return Set{
		JobAnalysis: `You are an expert technical recruiter. Analyze the job posting you are given.
List, as short bullet points under these labels: ROLE, SENIORITY, MUST-HAVE SKILLS, NICE-TO-HAVE SKILLS, TOOLS AND TECHNOLOGIES, RESPONSIBILITIES, DOMAIN KEYWORDS.
Quote the posting's own wording for keywords. Output only the analysis.`,

		Matching: `You compare a candidate's resume with a job analysis.
Report, as bullet points under the labels STRONG MATCHES, PARTIAL MATCHES, GAPS and KEYWORDS TO SURFACE, how the candidate's real experience lines up with the job.
Every match must cite evidence from the resume. Do not invent experience. Output only the report.`,

		SummarySkills: `Rewrite the candidate's professional summary and skills for the target job using the job analysis and the matching report.
Output exactly two sections, SUMMARY (three to four sentences) and SKILLS (a grouped, comma-separated list).
Only claim skills that the resume supports.
` + sectionRules,

		Experience: `Refine the candidate's work experience for the target job using the job analysis and the matching report.
Keep every employer, title and date range exactly as in the resume and in the same order.
Rewrite bullets to lead with impact, surface the job's keywords where the resume supports them, and keep quantities that exist in the resume.
Output a single EXPERIENCE section.
` + sectionRules,

		Education: `Extract the candidate's education from the resume and format it as one entry per line: degree, institution, year.
Use the job analysis only to order entries by relevance.
If the resume has no education, output nothing at all.
Do not output a header, placeholder text or "available upon request".`,

		Certifications: `Extract the candidate's certifications from the resume and format them as one entry per line: name, issuer, year.
If the resume lists no certifications, output nothing at all.
Do not output a header, placeholder text or "available upon request".`,

		Assembly: `Assemble a complete resume from the provided parts: the summary and skills, the experience section, the education entries and the certification entries.
A part marked NONE does not exist: omit that section entirely, do not write a placeholder.
The presence map lists which sections the candidate's original resume contained; do not add PROJECTS or CERTIFICATIONS unless it marks them present.
Keep the candidate's name and contact lines at the top.
` + sectionRules,

		Optimization: `You are an ATS optimization editor. Polish the assembled resume for the job analysis: tighten wording, surface keywords where truthful, and keep the structure.
Respect the presence map: do not add sections it marks absent, and keep EDUCATION empty if the candidate had none.
Return the full resume.
` + sectionRules,

		Formatting: `Typeset the resume you are given using the style of the example template.
Reproduce the template's document class, packages and macros; fill them with the resume's content only.
If the example template is NONE, produce a clean single-column LaTeX article.
Return only the complete document source, with no Markdown code fences and no commentary.`,
	}
}

// Load returns the defaults with any non-empty instruction from the YAML
// file at path applied on top. An empty path returns the defaults.
func Load(path string) (Set, error) {
	set := Default()
	if path == "" {
		return set, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return set, errors.Wrapf(err, "failed to read prompts file: %s", path)
	}
	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return set, errors.Wrapf(err, "failed to parse prompts file: %s", path)
	}
	set.merge(override)
	return set, nil
}

func (s *Set) merge(o Set) {
	pick := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	pick(&s.JobAnalysis, o.JobAnalysis)
	pick(&s.Matching, o.Matching)
	pick(&s.SummarySkills, o.SummarySkills)
	pick(&s.Experience, o.Experience)
	pick(&s.Education, o.Education)
	pick(&s.Certifications, o.Certifications)
	pick(&s.Assembly, o.Assembly)
	pick(&s.Optimization, o.Optimization)
	pick(&s.Formatting, o.Formatting)
}

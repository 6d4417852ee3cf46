package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

//go:embed templates/resume.tex
var defaultTemplate string

// Template placeholders. Each must appear in a template at least once.
const (
	PlaceholderName            = "{{NAME}}"
	PlaceholderEmail           = "{{EMAIL}}"
	PlaceholderPhone           = "{{PHONE}}"
	PlaceholderLinkedIn        = "{{LINKEDIN}}"
	PlaceholderGitHub          = "{{GITHUB}}"
	PlaceholderExperience      = "{{EXPERIENCE}}"
	PlaceholderEducation       = "{{EDUCATION}}"
	PlaceholderProjects        = "{{PROJECTS}}"
	PlaceholderTechnicalSkills = "{{TECHNICAL_SKILLS}}"
	PlaceholderPositions       = "{{POSITIONS}}"
	PlaceholderCertifications  = "{{CERTIFICATIONS}}"
)

// Placeholders lists every placeholder in substitution order
var Placeholders = []string{
	PlaceholderName,
	PlaceholderEmail,
	PlaceholderPhone,
	PlaceholderLinkedIn,
	PlaceholderGitHub,
	PlaceholderExperience,
	PlaceholderEducation,
	PlaceholderProjects,
	PlaceholderTechnicalSkills,
	PlaceholderPositions,
	PlaceholderCertifications,
}

func init() {
	if err := CheckTemplate(defaultTemplate); err != nil {
		panic(err)
	}
}

// DefaultTemplate returns the embedded resume template
func DefaultTemplate() string {
	return defaultTemplate
}

// CheckTemplate reports a *TemplateError naming every placeholder the
// template is missing.
func CheckTemplate(tmpl string) error {
	var missing []string
	for _, p := range Placeholders {
		if !strings.Contains(tmpl, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return &TemplateError{Message: "missing placeholders: " + strings.Join(missing, ", ")}
	}
	return nil
}

// LoadTemplate reads and checks a template file
func LoadTemplate(templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	tmpl := string(content)
	if err := CheckTemplate(tmpl); err != nil {
		return "", err
	}
	return tmpl, nil
}

// RenderLaTeX renders the record with the embedded template. It succeeds for
// every non-nil record; empty sections render as placeholder entries.
func RenderLaTeX(record *types.ResumeRecord) (string, error) {
	return RenderLaTeXWithTemplate(record, defaultTemplate)
}

// RenderLaTeXWithTemplate renders the record into tmpl. All placeholders are
// substituted in a single pass, so inserted text is never rescanned.
func RenderLaTeXWithTemplate(record *types.ResumeRecord, tmpl string) (string, error) {
	if record == nil {
		return "", &RenderError{Message: "resume record is nil"}
	}
	if err := CheckTemplate(tmpl); err != nil {
		return "", err
	}

	replacer := strings.NewReplacer(
		PlaceholderName, EscapeLaTeX(record.Name),
		PlaceholderEmail, EscapeLaTeX(record.Email),
		PlaceholderPhone, EscapeLaTeX(valueOr(record.Phone, DefaultPhone)),
		PlaceholderLinkedIn, EscapeLaTeX(stripScheme(valueOr(record.LinkedIn, DefaultLinkedIn))),
		PlaceholderGitHub, renderGitHub(record.GitHub),
		PlaceholderExperience, renderExperience(record.Experiences),
		PlaceholderEducation, renderEducation(record.Education),
		PlaceholderProjects, renderProjects(record.Projects),
		PlaceholderTechnicalSkills, renderSkills(record),
		PlaceholderPositions, renderPositions(record.Positions),
		PlaceholderCertifications, renderCertifications(record.Certifications),
	)
	return replacer.Replace(tmpl), nil
}

func valueOr(value *string, fallback string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return fallback
	}
	return *value
}

// stripScheme drops a leading http(s):// since the template supplies one
func stripScheme(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimPrefix(url, "https://")
	return strings.TrimPrefix(url, "http://")
}

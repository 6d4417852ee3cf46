package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Contact defaults used when the record has no value
const (
	DefaultPhone    = "+91 1234567890"
	DefaultLinkedIn = "linkedin.com/in/yourprofile"
)

// Placeholder entries for sections without data
const (
	ExperiencePlaceholder = "    \\resumeSubheading{Add Your Experience Here}{Jan 2024 - Present}{Role}{}\\resumeItemListStart\n" +
		"        \\resumeItem{Description of your work experience}\n" +
		"    \\resumeItemListEnd\n\n"
	EducationPlaceholder = "    \\resumeSubheading{Your University}{2020 - 2024}{Your Degree}{}\\vspace{-7pt}\n"
	ProjectsPlaceholder  = "    \\resumeProjectHeading{\\textbf{Add Your Project Here} $|$ Technologies}{Date}\\resumeItemListStart\n" +
		"      \\resumeItem{Description of your project}\n" +
		"    \\resumeItemListEnd\n"
	SkillsPlaceholder    = "\\textbf{Languages}: Python, Java, C++ \\\\\n     \\textbf{Technologies}: React, Node.js, Docker"
	PositionsPlaceholder = "        \\resumeSubheading{Organization Name}{2022 - 2024}{Your Role}{}\\resumeItemListStart\n" +
		"            \\resumeItem{Description of your responsibilities}\n" +
		"        \\resumeItemListEnd\n\n"
	CertificationsPlaceholder = "    \\resumeProjectHeading{\\textbf{Add Your Certification Here} $|$ Issuer}{Date}\n"
)

// skillLineSeparator ends one skills line and indents the next
const skillLineSeparator = " \\\\\n     "

func renderGitHub(github *string) string {
	if github == nil || strings.TrimSpace(*github) == "" {
		return ""
	}
	url := EscapeLaTeX(stripScheme(*github))
	return fmt.Sprintf(" ~\n    \\href{https://%s}{\\raisebox{-0.2\\height}\\faGithub\\ GitHub}", url)
}

func renderExperience(experiences []types.WorkExperience) string {
	if len(experiences) == 0 {
		return ExperiencePlaceholder
	}
	var sb strings.Builder
	for _, exp := range experiences {
		fmt.Fprintf(&sb, "    \\resumeSubheading{%s}{%s}{%s}{}\\resumeItemListStart\n",
			EscapeLaTeX(exp.Company), EscapeLaTeX(exp.Duration), EscapeLaTeX(exp.Role))
		writeItems(&sb, "        ", exp.Achievements)
		sb.WriteString("    \\resumeItemListEnd\n\n")
	}
	return sb.String()
}

func renderEducation(education []types.Education) string {
	if len(education) == 0 {
		return EducationPlaceholder
	}
	var sb strings.Builder
	for _, edu := range education {
		fmt.Fprintf(&sb, "    \\resumeSubheading{%s}{%s}{%s}{}\\vspace{-7pt}\n",
			EscapeLaTeX(edu.Institution), EscapeLaTeX(edu.Duration), EscapeLaTeX(edu.Degree))
	}
	return sb.String()
}

func renderProjects(projects []types.Project) string {
	if len(projects) == 0 {
		return ProjectsPlaceholder
	}
	var sb strings.Builder
	for _, proj := range projects {
		fmt.Fprintf(&sb, "    \\resumeProjectHeading{\\textbf{%s} $|$ %s}{%s}\\resumeItemListStart\n",
			EscapeLaTeX(proj.Name), escapeJoin(proj.Technologies), EscapeLaTeX(proj.Date))
		writeItems(&sb, "      ", proj.Achievements)
		sb.WriteString("    \\resumeItemListEnd\n")
	}
	return sb.String()
}

// renderSkills lists technical skill categories, then soft skills and coding
// profiles when present. Empty categories are skipped.
func renderSkills(record *types.ResumeRecord) string {
	var lines []string
	for _, category := range record.TechnicalSkills {
		if len(category.Skills) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("\\textbf{%s}: %s", EscapeLaTeX(category.Name), escapeJoin(category.Skills)))
	}
	if len(lines) == 0 {
		lines = append(lines, SkillsPlaceholder)
	}
	if len(record.SoftSkills) > 0 {
		lines = append(lines, "\\textbf{Soft Skills}: "+escapeJoin(record.SoftSkills))
	}
	if len(record.CodingStats) > 0 {
		profiles := make([]string, 0, len(record.CodingStats))
		for _, stat := range record.CodingStats {
			entry := EscapeLaTeX(stat.Platform)
			if stat.Description != "" {
				entry += " (" + EscapeLaTeX(stat.Description) + ")"
			}
			profiles = append(profiles, entry)
		}
		lines = append(lines, "\\textbf{Coding Profiles}: "+strings.Join(profiles, ", "))
	}
	return strings.Join(lines, skillLineSeparator)
}

func renderPositions(positions []types.PositionOfResponsibility) string {
	if len(positions) == 0 {
		return PositionsPlaceholder
	}
	var sb strings.Builder
	for _, por := range positions {
		fmt.Fprintf(&sb, "        \\resumeSubheading{%s}{%s}{%s}{%s}\\resumeItemListStart\n",
			EscapeLaTeX(por.Organization), EscapeLaTeX(por.Duration), EscapeLaTeX(por.Role), EscapeLaTeX(por.Location))
		fmt.Fprintf(&sb, "            \\resumeItem{%s}\n", EscapeLaTeX(por.Description))
		sb.WriteString("        \\resumeItemListEnd\n\n")
	}
	return sb.String()
}

func renderCertifications(certifications []types.Certification) string {
	if len(certifications) == 0 {
		return CertificationsPlaceholder
	}
	var sb strings.Builder
	for _, cert := range certifications {
		heading := "\\textbf{" + EscapeLaTeX(cert.Name) + "}"
		if cert.Issuer != "" {
			heading += " $|$ " + EscapeLaTeX(cert.Issuer)
		}
		fmt.Fprintf(&sb, "    \\resumeProjectHeading{%s}{%s}\n", heading, EscapeLaTeX(cert.Date))
	}
	return sb.String()
}

func writeItems(sb *strings.Builder, indent string, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "%s\\resumeItem{%s}\n", indent, EscapeLaTeX(item))
	}
}

func escapeJoin(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = EscapeLaTeX(item)
	}
	return strings.Join(escaped, ", ")
}

package types

// GeneratedProjects is the payload returned by the project generation call
type GeneratedProjects struct {
	Projects []Project `json:"projects"`
}

// GeneratedSkills is the payload returned by the skills generation call
type GeneratedSkills struct {
	Skills SkillSet `json:"skills"`
}

package assembly

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseExtracted() *types.ExtractedResume {
	return &types.ExtractedResume{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    strPtr("+44 20 7946 0000"),
		GitHub:   strPtr("  "),
		LinkedIn: nil,
		Experiences: []types.WorkExperience{
			{Company: "Analytical Engines", Role: "Engineer", Duration: "1842", Achievements: []string{"Wrote notes"}},
		},
		Education:       []types.Education{{Institution: "Home", Degree: "Mathematics", Duration: "1835"}},
		Projects:        []types.Project{{Name: "Extracted Project", Technologies: []string{"Brass"}, Achievements: []string{"x"}}},
		TechnicalSkills: types.SkillSet{{Name: "Languages", Skills: []string{"Note G"}}},
		SoftSkills:      []string{"Writing"},
		Positions:       []types.PositionOfResponsibility{},
		Certifications:  []types.Certification{},
	}
}

func TestAssemble_GeneratedContentTakesPrecedence(t *testing.T) {
	generated := []types.Project{
		{Name: "A", Technologies: []string{"Go"}, Achievements: []string{"1", "2"}},
		{Name: "B", Technologies: []string{"Go"}, Achievements: []string{"1", "2"}},
		{Name: "C", Technologies: []string{"Go"}, Achievements: []string{"1", "2"}},
	}
	skills := types.SkillSet{{Name: "Tools", Skills: []string{"Docker"}}}

	record, err := Assemble(baseExtracted(), generated, skills)
	require.NoError(t, err)

	assert.Equal(t, generated, record.Projects)
	assert.Equal(t, skills, record.TechnicalSkills)
}

func TestAssemble_FallsBackToExtracted(t *testing.T) {
	extracted := baseExtracted()

	record, err := Assemble(extracted, nil, types.SkillSet{})
	require.NoError(t, err)

	assert.Equal(t, extracted.Projects, record.Projects)
	assert.Equal(t, extracted.TechnicalSkills, record.TechnicalSkills)
}

func TestAssemble_DefaultsAndOptionalFields(t *testing.T) {
	record, err := Assemble(&types.ExtractedResume{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultName, record.Name)
	assert.Equal(t, DefaultEmail, record.Email)
	assert.Nil(t, record.Phone)
	assert.Equal(t, []types.WorkExperience{}, record.Experiences)
	assert.Equal(t, []types.Education{}, record.Education)
	assert.Equal(t, []types.Project{}, record.Projects)
	assert.Equal(t, types.SkillSet{}, record.TechnicalSkills)
	assert.Equal(t, []string{}, record.SoftSkills)
	assert.Equal(t, []types.PositionOfResponsibility{}, record.Positions)
	assert.Equal(t, []types.Certification{}, record.Certifications)
	assert.Nil(t, record.CodingStats)
	assert.NoError(t, record.Validate())
}

func TestAssemble_BlankOptionalStringsBecomeNil(t *testing.T) {
	record, err := Assemble(baseExtracted(), nil, nil)
	require.NoError(t, err)

	require.NotNil(t, record.Phone)
	assert.Equal(t, "+44 20 7946 0000", *record.Phone)
	assert.Nil(t, record.GitHub)
	assert.Nil(t, record.LinkedIn)
}

func TestAssemble_DoesNotAliasInputs(t *testing.T) {
	extracted := baseExtracted()
	record, err := Assemble(extracted, nil, nil)
	require.NoError(t, err)

	record.Experiences[0].Achievements[0] = "changed"
	record.TechnicalSkills[0].Skills[0] = "changed"

	assert.Equal(t, "Wrote notes", extracted.Experiences[0].Achievements[0])
	assert.Equal(t, "Note G", extracted.TechnicalSkills[0].Skills[0])
}

func TestAssemble_IsDeterministic(t *testing.T) {
	extracted := baseExtracted()
	extracted.CodingStats = json.RawMessage(`{"LeetCode": "500", "Codeforces": "Expert"}`)

	first, err := Assemble(extracted, nil, nil)
	require.NoError(t, err)
	second, err := Assemble(extracted, nil, nil)
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}

func TestAssemble_NilExtracted(t *testing.T) {
	_, err := Assemble(nil, nil, nil)

	var malformed *MalformedStateError
	assert.ErrorAs(t, err, &malformed)
}

func TestAssemble_DropsEmptySkillCategories(t *testing.T) {
	extracted := baseExtracted()
	extracted.TechnicalSkills = types.SkillSet{{Name: "", Skills: []string{"Go"}}, {Name: "Tools", Skills: []string{"Git"}}}

	record, err := Assemble(extracted, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, types.SkillSet{{Name: "Tools", Skills: []string{"Git"}}}, record.TechnicalSkills)
	assert.NoError(t, record.Validate())
}

func TestNormalizeCodingStats(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected types.CodingStats
	}{
		{
			name: "list of entries",
			raw:  `[{"platform": "LeetCode", "description": "500 problems"}, {"platform": "Codeforces", "description": "Expert"}]`,
			expected: types.CodingStats{
				{Platform: "LeetCode", Description: "500 problems"},
				{Platform: "Codeforces", Description: "Expert"},
			},
		},
		{
			name:     "list skips non-objects and empty platforms",
			raw:      `["LeetCode", 3, null, {"platform": "", "description": "x"}, {"platform": "HackerRank", "description": "5 stars"}]`,
			expected: types.CodingStats{{Platform: "HackerRank", Description: "5 stars"}},
		},
		{
			name:     "empty list",
			raw:      `[]`,
			expected: types.CodingStats{},
		},
		{
			name: "mapping",
			raw:  `{"LeetCode": "500 problems", "Kaggle": 2}`,
			expected: types.CodingStats{
				{Platform: "LeetCode", Description: "500 problems"},
				{Platform: "Kaggle", Description: "2"},
			},
		},
		{name: "null", raw: `null`, expected: nil},
		{name: "absent", raw: ``, expected: nil},
		{name: "string", raw: `"lots of problems"`, expected: nil},
		{name: "number", raw: `42`, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := NormalizeCodingStats(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stats)
		})
	}
}

package models

import (
	"fmt"
	"strings"
)

// Numeric bounds of the persona form controls.
const (
	MinAge          = 10
	MaxAge          = 100
	MaxChildren     = 10
	MaxIncome       = 1000
	IncomeStep      = 25
	MinTechAffinity = 1
	MaxTechAffinity = 5
	MaxChallenges   = 5
	MaxChallengeLen = 40
)

// PersonaAttributes is the target persona entered by the user. Zero values mean "not specified".
// Income is annual income in thousand USD.
type PersonaAttributes struct {
	Age            int      `form:"age" json:"age" mapstructure:"age" binding:"required,min=10,max=100"`
	Gender         string   `form:"gender" json:"gender" mapstructure:"gender" binding:"omitempty,option=gender"`
	MaritalStatus  string   `form:"marital_status" json:"marital_status,omitempty" mapstructure:"marital_status" binding:"omitempty,option=marital_status"`
	Children       int      `form:"children" json:"children,omitempty" mapstructure:"children" binding:"min=0,max=10"`
	Education      string   `form:"education" json:"education,omitempty" mapstructure:"education" binding:"omitempty,option=education"`
	Occupation     string   `form:"occupation" json:"occupation,omitempty" mapstructure:"occupation" binding:"omitempty,option=occupation"`
	Income         int      `form:"income" json:"income,omitempty" mapstructure:"income" binding:"min=0,max=1000"`
	Location       string   `form:"location" json:"location,omitempty" mapstructure:"location" binding:"omitempty,option=location"`
	Interests      []string `form:"interests" json:"interests,omitempty" mapstructure:"interests" binding:"omitempty,dive,option=interest"`
	Values         []string `form:"values" json:"values,omitempty" mapstructure:"values" binding:"omitempty,dive,option=value"`
	TechAffinity   int      `form:"tech_affinity" json:"tech_affinity,omitempty" mapstructure:"tech_affinity" binding:"omitempty,min=1,max=5"`
	AdditionalInfo string   `form:"additional_info" json:"additional_info,omitempty" mapstructure:"additional_info" binding:"max=200"`
}

// Describe renders the persona as the flat text block embedded in the prompt.
// Only specified fields are listed, each with its literal value.
func (p PersonaAttributes) Describe() string {
	var b strings.Builder
	line := func(label string, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "- %s: %s\n", label, value)
	}

	if p.Age > 0 {
		line("Age", fmt.Sprintf("%d", p.Age))
	}
	line("Gender", p.Gender)
	line("Marital status", p.MaritalStatus)
	if p.Children > 0 {
		line("Children", fmt.Sprintf("%d", p.Children))
	}
	line("Education", p.Education)
	line("Occupation", p.Occupation)
	if p.Income > 0 {
		line("Annual income", fmt.Sprintf("%dk USD", p.Income))
	}
	line("Location", p.Location)
	line("Interests", strings.Join(p.Interests, ", "))
	line("Values", strings.Join(p.Values, ", "))
	if p.TechAffinity > 0 {
		line("Tech affinity", fmt.Sprintf("%d/%d", p.TechAffinity, MaxTechAffinity))
	}
	line("Other", strings.TrimSpace(p.AdditionalInfo))

	return strings.TrimRight(b.String(), "\n")
}

// ChallengeList is the ordered list of problems the persona faces.
type ChallengeList []string

// Describe renders the challenges as a bullet list for the prompt.
func (c ChallengeList) Describe() string {
	lines := make([]string, 0, len(c))
	for _, challenge := range c {
		lines = append(lines, "- "+challenge)
	}
	return strings.Join(lines, "\n")
}

// ChallengeInput is the form shape of the challenge rows: a category select plus a
// free-text field used when the category is "other". Rows are paired by position.
type ChallengeInput struct {
	Categories []string `form:"challenge" binding:"max=5,dive,omitempty,option=challenge"`
	Other      []string `form:"challenge_other" binding:"max=5,dive,max=40"`
}

// List resolves the rows into a ChallengeList. Empty rows and "other" rows without text are skipped.
func (in ChallengeInput) List() ChallengeList {
	list := make(ChallengeList, 0, len(in.Categories))
	for i, category := range in.Categories {
		switch category {
		case "":
			continue
		case "other":
			if i < len(in.Other) {
				if text := strings.TrimSpace(in.Other[i]); text != "" {
					list = append(list, text)
				}
			}
		default:
			list = append(list, strings.ReplaceAll(category, "_", " "))
		}
	}
	return list
}

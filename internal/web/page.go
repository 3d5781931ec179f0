package web

import (
	"github.com/BerylCAtieno/persona-insights/internal/models"
	"github.com/BerylCAtieno/persona-insights/internal/render"
)

type challengeRow struct {
	Number   int
	Category string
	Other    string
}

type page struct {
	Persona       models.PersonaAttributes
	Challenges    []challengeRow
	Options       map[string][]models.Option
	Limits        limits
	SchemaVersion int
	Errors        map[string]string
	Failure       string
	Result        *render.View
}

type limits struct {
	MinAge, MaxAge                   int
	MaxChildren                      int
	MaxIncome, IncomeStep            int
	MinTechAffinity, MaxTechAffinity int
	MaxChallengeLen                  int
}

var formLimits = limits{
	MinAge:          models.MinAge,
	MaxAge:          models.MaxAge,
	MaxChildren:     models.MaxChildren,
	MaxIncome:       models.MaxIncome,
	IncomeStep:      models.IncomeStep,
	MinTechAffinity: models.MinTechAffinity,
	MaxTechAffinity: models.MaxTechAffinity,
	MaxChallengeLen: models.MaxChallengeLen,
}

var optionSetNames = []string{
	"gender", "marital_status", "education", "occupation", "location", "interest", "value", "challenge",
}

func defaultForm() FormInput {
	return FormInput{
		PersonaAttributes: models.PersonaAttributes{Age: 30, TechAffinity: 3},
	}
}

func (h *InsightHandler) newPage(in FormInput) page {
	options := make(map[string][]models.Option, len(optionSetNames))
	for _, name := range optionSetNames {
		options[name] = models.Options(name)
	}

	rows := make([]challengeRow, models.MaxChallenges)
	for i := range rows {
		rows[i].Number = i + 1
		if i < len(in.Categories) {
			rows[i].Category = in.Categories[i]
		}
		if i < len(in.Other) {
			rows[i].Other = in.Other[i]
		}
	}

	return page{
		Persona:       in.PersonaAttributes,
		Challenges:    rows,
		Options:       options,
		Limits:        formLimits,
		SchemaVersion: h.service.SchemaVersion(),
	}
}

package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OptionTag is the validator tag that restricts a field to one of the option sets below.
// Usage: `binding:"omitempty,option=gender"` or `binding:"dive,option=interest"`.
const OptionTag = "option"

// Option is one selectable value of an enumerated persona control.
type Option struct {
	Value string
	Label string
}

var optionSets = map[string][]string{
	"gender":         {"male", "female", "other"},
	"marital_status": {"single", "married", "divorced", "widowed"},
	"education":      {"high_school", "vocational", "bachelor", "master", "doctorate"},
	"occupation": {
		"student", "office_worker", "self_employed", "civil_servant", "professional",
		"homemaker", "part_time", "retired", "unemployed",
	},
	"location": {"urban", "suburban", "rural"},
	"interest": {
		"technology", "travel", "food", "fashion", "sports", "music",
		"reading", "gaming", "health", "finance", "parenting", "outdoors",
	},
	"value": {
		"family", "career", "health", "freedom", "sustainability",
		"security", "self_improvement", "community", "tradition", "adventure",
	},
	"challenge": {
		"time_management", "work_life_balance", "money_saving", "health_concerns",
		"career_growth", "relationships", "childcare", "loneliness", "stress", "other",
	},
}

var titleCaser = cases.Title(language.English)

// Options returns the selectable values of a named set in display order.
func Options(set string) []Option {
	values := optionSets[set]
	options := make([]Option, 0, len(values))
	for _, value := range values {
		options = append(options, Option{Value: value, Label: Label(value)})
	}
	return options
}

// IsOption reports whether value belongs to the named set.
func IsOption(set string, value string) bool {
	return slices.Contains(optionSets[set], value)
}

// Label turns an option or trait key into display text ("price_sensitivity" -> "Price Sensitivity").
func Label(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

// RegisterValidations installs the option tag on v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(OptionTag, validateOption); err != nil {
		return fmt.Errorf("register %s validation: %w", OptionTag, err)
	}
	return nil
}

func validateOption(fl validator.FieldLevel) bool {
	set := fl.Param()
	if _, ok := optionSets[set]; !ok {
		return false
	}
	return IsOption(set, fl.Field().String())
}

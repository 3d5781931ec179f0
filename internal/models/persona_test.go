package models

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	return v
}

func TestDescribeListsSpecifiedFields(t *testing.T) {
	p := PersonaAttributes{
		Age:            34,
		Gender:         "female",
		MaritalStatus:  "married",
		Children:       2,
		Education:      "master",
		Occupation:     "office_worker",
		Income:         75,
		Location:       "suburban",
		Interests:      []string{"travel", "food"},
		Values:         []string{"family"},
		TechAffinity:   4,
		AdditionalInfo: "  commutes by train ",
	}

	text := p.Describe()
	for _, want := range []string{
		"34", "female", "married", "Children: 2", "master", "office_worker",
		"75k USD", "suburban", "travel, food", "family", "4/5", "commutes by train",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in description:\n%s", want, text)
		}
	}
}

func TestDescribeSkipsDefaults(t *testing.T) {
	text := PersonaAttributes{Age: 30, Gender: "male"}.Describe()
	if text != "- Age: 30\n- Gender: male" {
		t.Fatalf("unexpected description: %q", text)
	}
}

func TestChallengeInputList(t *testing.T) {
	in := ChallengeInput{
		Categories: []string{"time_management", "", "other", "other", "stress"},
		Other:      []string{"", "", "  finding a good dentist ", "", ""},
	}
	got := in.List()
	want := ChallengeList{"time management", "finding a good dentist", "stress"}
	if len(got) != len(want) {
		t.Fatalf("unexpected list: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %q want %q", i, got[i], want[i])
		}
	}
	if desc := got.Describe(); !strings.HasPrefix(desc, "- time management\n") {
		t.Fatalf("unexpected challenge description: %q", desc)
	}
}

func TestValidationAcceptsKnownOptions(t *testing.T) {
	v := newValidator(t)
	p := PersonaAttributes{
		Age:       30,
		Gender:    "male",
		Interests: []string{"technology"},
	}
	if err := v.Struct(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidationRejectsOutOfRange(t *testing.T) {
	v := newValidator(t)
	cases := []struct {
		name string
		p    PersonaAttributes
	}{
		{"age too low", PersonaAttributes{Age: 5}},
		{"age too high", PersonaAttributes{Age: 130}},
		{"unknown gender", PersonaAttributes{Age: 30, Gender: "robot"}},
		{"unknown interest", PersonaAttributes{Age: 30, Interests: []string{"knitting"}}},
		{"tech affinity", PersonaAttributes{Age: 30, TechAffinity: 6}},
		{"income", PersonaAttributes{Age: 30, Income: 5000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.Struct(tc.p); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidationChallengeInput(t *testing.T) {
	v := newValidator(t)
	ok := ChallengeInput{Categories: []string{"stress", ""}, Other: []string{"", ""}}
	if err := v.Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooLong := ChallengeInput{
		Categories: []string{"other"},
		Other:      []string{strings.Repeat("x", MaxChallengeLen+1)},
	}
	if err := v.Struct(tooLong); err == nil {
		t.Fatalf("expected error for long challenge text")
	}
	unknown := ChallengeInput{Categories: []string{"boredom"}}
	if err := v.Struct(unknown); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestLabel(t *testing.T) {
	if got := Label("price_sensitivity"); got != "Price Sensitivity" {
		t.Fatalf("unexpected label: %s", got)
	}
	opts := Options("location")
	if len(opts) != 3 || opts[0].Value != "urban" || opts[0].Label != "Urban" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

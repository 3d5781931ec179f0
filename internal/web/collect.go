package web

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/BerylCAtieno/persona-insights/internal/httperror"
	"github.com/BerylCAtieno/persona-insights/internal/models"
)

// FormInput is everything the HTML form submits.
type FormInput struct {
	models.PersonaAttributes
	models.ChallengeInput
}

// InsightRequest is the JSON and A2A shape of one submission.
type InsightRequest struct {
	Persona    models.PersonaAttributes `json:"persona" mapstructure:"persona"`
	Challenges []string                 `json:"challenges" mapstructure:"challenges" binding:"min=1,max=5,dive,required,max=40"`
}

// ChallengeList returns the trimmed, non-empty challenges.
func (r InsightRequest) ChallengeList() models.ChallengeList {
	list := make(models.ChallengeList, 0, len(r.Challenges))
	for _, challenge := range r.Challenges {
		if text := strings.TrimSpace(challenge); text != "" {
			list = append(list, text)
		}
	}
	return list
}

// InputError lists the fields the collector rejected, keyed by field name.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+" "+e.Fields[key])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// RegisterValidations installs the persona option validator on gin's binding engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	return models.RegisterValidations(v)
}

// CollectForm binds and validates a form submission. The returned FormInput is filled even on
// error so the form can be shown again with the user's values.
func CollectForm(c *gin.Context) (FormInput, models.ChallengeList, error) {
	var in FormInput
	if err := c.ShouldBindWith(&in, binding.Form); err != nil {
		return in, nil, inputError(err)
	}
	challenges := in.List()
	if len(challenges) == 0 {
		return in, nil, &InputError{Fields: map[string]string{"challenge": "enter at least one challenge"}}
	}
	return in, challenges, nil
}

// CollectJSON binds and validates a JSON API request.
func CollectJSON(c *gin.Context) (InsightRequest, error) {
	var req InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	if len(req.ChallengeList()) == 0 {
		return req, httperror.NewInvalidInput("at least one non-empty challenge is required")
	}
	return req, nil
}

// CollectData decodes an already-parsed payload (an A2A data part) with the same rules as the JSON API.
func CollectData(data map[string]any) (InsightRequest, error) {
	var req InsightRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return req, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return req, fmt.Errorf("decode persona data: %w", err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return req, err
	}
	if len(req.ChallengeList()) == 0 {
		return req, errors.New("at least one non-empty challenge is required")
	}
	return req, nil
}

func inputError(err error) *InputError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := httperror.FieldMessages(validationErrors)
		if msg, ok := fields["categories"]; ok {
			delete(fields, "categories")
			fields["challenge"] = msg
		}
		if msg, ok := fields["other"]; ok {
			delete(fields, "other")
			fields["challenge"] = msg
		}
		return &InputError{Fields: fields}
	}
	return &InputError{Fields: map[string]string{"form": err.Error()}}
}

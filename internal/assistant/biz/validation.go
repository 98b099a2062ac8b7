package biz

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
)

const (
	MaxLabelLength = 255

	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinTopP        = 0.0
	MaxTopP        = 1.0
)

// AssistantInput is a submitted create or edit form
type AssistantInput struct {
	Label              string       `json:"label"`
	Description        string       `json:"description"`
	Model              string       `json:"model"`
	Temperature        types.Number `json:"temperature"`
	TopP               types.Number `json:"top_p"`
	SystemInstructions string       `json:"system_instructions"`
	ProjectID          string       `json:"project_id"`
	Enabled            *bool        `json:"enabled"`
}

// Validate checks every field domain and returns the normalized values.
// It never touches the network.
func (in *AssistantInput) Validate() (*types.Assistant, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, invalid("label", "is required")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return nil, invalid("label", "must be at most %d characters", MaxLabelLength)
	}

	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, invalid("model", "is required")
	}

	temperature, err := parseRange("temperature", in.Temperature, MinTemperature, MaxTemperature)
	if err != nil {
		return nil, err
	}
	topP, err := parseRange("top_p", in.TopP, MinTopP, MaxTopP)
	if err != nil {
		return nil, err
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	return &types.Assistant{
		Label:              label,
		Description:        in.Description,
		Model:              model,
		Temperature:        temperature,
		TopP:               topP,
		SystemInstructions: in.SystemInstructions,
		ProjectID:          strings.TrimSpace(in.ProjectID),
		Enabled:            enabled,
	}, nil
}

func parseRange(field string, n types.Number, lo, hi float64) (float64, error) {
	if n.IsZero() {
		return 0, invalid(field, "is required")
	}
	v, err := n.Float()
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(field, "%q is not a number", string(n))
	}
	if v < lo || v > hi {
		return 0, invalid(field, "must be between %g and %g", lo, hi)
	}
	return v, nil
}

package types

import "time"

// Assistant is a locally persisted assistant configuration. Once the record has
// been created on the OpenAI platform, ID equals the remote-issued identifier.
type Assistant struct {
	ID                 string  `json:"id"`
	Label              string  `json:"label"`
	Description        string  `json:"description"`
	Model              string  `json:"model"`
	Temperature        float64 `json:"temperature"`
	TopP               float64 `json:"top_p"`
	SystemInstructions string  `json:"system_instructions"`
	ProjectID          string  `json:"project_id"` // local only, never sent to OpenAI
	Enabled            bool    `json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsNew reports whether the record has never been persisted with a remote id.
func (a *Assistant) IsNew() bool {
	return a.ID == ""
}

// StatusLabel is the value shown in the listing's status column
func (a *Assistant) StatusLabel() string {
	if a.Enabled {
		return "Enabled"
	}
	return "Disabled"
}

// Fields returns the payload mirrored to the remote assistant
func (a *Assistant) Fields() AssistantFields {
	return AssistantFields{
		Name:         a.Label,
		Description:  a.Description,
		Model:        a.Model,
		Instructions: a.SystemInstructions,
		Temperature:  a.Temperature,
		TopP:         a.TopP,
	}
}

// AssistantFields is the field mapping sent on create and update calls.
type AssistantFields struct {
	Name         string
	Description  string
	Model        string
	Instructions string
	Temperature  float64
	TopP         float64
}

// RemoteAssistant is an assistant as listed by the OpenAI platform.
// It only lives for the duration of a reconciliation or import.
type RemoteAssistant struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	Instructions string  `json:"instructions"`
}

// DisplayName is the remote name, or the id when the assistant is unnamed
func (r *RemoteAssistant) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// RemoteModel is a model id offered by the OpenAI platform
type RemoteModel struct {
	ID string `json:"id"`
}

// SaveResult tells the caller whether a save created or updated the record.
type SaveResult int

const (
	SaveCreated SaveResult = iota + 1
	SaveUpdated
)

func (r SaveResult) String() string {
	switch r {
	case SaveCreated:
		return "created"
	case SaveUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Settings is the singleton settings record
type Settings struct {
	SecretKey string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

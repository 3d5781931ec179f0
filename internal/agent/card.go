package agent

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

//go:embed agent.json
var cardTemplate []byte

// Card is the A2A agent card served at /.well-known/agent.json.
type Card struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Version            string       `json:"version"`
	ProtocolVersion    string       `json:"protocolVersion"`
	URL                string       `json:"url"`
	Provider           Provider     `json:"provider"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Skills             []Skill      `json:"skills"`
	Endpoints          Endpoints    `json:"endpoints"`
}

type Provider struct {
	Organization string `json:"organization"`
}

type Capabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples,omitempty"`
}

// Endpoints lists the absolute URLs of the agent surfaces.
type Endpoints struct {
	A2A     string `json:"a2a"`
	API     string `json:"api"`
	Health  string `json:"health"`
	WebForm string `json:"web"`
}

// Paths served by the agent.
const (
	CardPath   = "/.well-known/agent.json"
	A2APath    = "/a2a/insights"
	APIPath    = "/api/insights"
	HealthPath = "/health"
)

// LoadCard decodes the embedded card and points its URLs at baseURL.
func LoadCard(baseURL string) (Card, error) {
	var card Card
	if err := json.Unmarshal(cardTemplate, &card); err != nil {
		return Card{}, fmt.Errorf("decode agent card: %w", err)
	}

	base := strings.TrimRight(baseURL, "/")
	card.URL = base + A2APath
	card.Endpoints = Endpoints{
		A2A:     base + A2APath,
		API:     base + APIPath,
		Health:  base + HealthPath,
		WebForm: base + "/",
	}
	return card, nil
}

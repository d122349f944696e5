package model

import "time"

const ImpactMaintenance = "maintenance"

type Incident struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	Impact     string      `json:"impact"`
	Shortlink  string      `json:"shortlink,omitempty"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	Components []Component `json:"components"`
}

func (i Incident) IsMaintenance() bool {
	return i.Impact == ImpactMaintenance
}

type Component struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id"`
	Status  string `json:"status,omitempty"`
}

type ComponentGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Components  []string `json:"components,omitempty"`
	Position    int      `json:"position,omitempty"`
}

// Platform is a component group reduced to what message formatting needs.
type Platform struct {
	ID   string
	Name string
}

type PushPayload struct {
	APIKey string   `json:"api_key"`
	Data   PushData `json:"data"`
}

type PushData struct {
	Item []PushItem `json:"item"`
}

// PushItem type 1 is a plain text item.
type PushItem struct {
	Text string `json:"text"`
	Type int    `json:"type"`
}

func NewTextPayload(apiKey, text string) PushPayload {
	return PushPayload{
		APIKey: apiKey,
		Data:   PushData{Item: []PushItem{{Text: text, Type: 1}}},
	}
}

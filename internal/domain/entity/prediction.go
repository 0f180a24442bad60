package entity

import "time"

type AIResponse struct {
	Content    string         `json:"content"`
	Model      string         `json:"model"`
	TokenCount int            `json:"token_count"`
	Metadata   map[string]any `json:"metadata"`
}

// School describes the district the prediction is made for.
type School struct {
	Name      string
	State     string
	City      string
	County    string
	ZipCode   string
	StartTime string
	Timezone  string
}

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PredictionRun is the outcome of one pass of the snow-day pipeline.
type PredictionRun struct {
	ID           string    `json:"id"`
	Prediction   string    `json:"prediction"`
	Model        string    `json:"model"`
	Likely       bool      `json:"likely"`
	Notified     int       `json:"notified"`
	FallbackUsed bool      `json:"fallback_used"`
	StartedAt    time.Time `json:"started_at"`
	LatencyMs    int64     `json:"latency_ms"`
}

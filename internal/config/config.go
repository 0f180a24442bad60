package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"snowday/internal/domain/entity"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"logging"`
	Page    PageConfig    `mapstructure:"page"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Weather WeatherConfig `mapstructure:"weather"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	School  SchoolConfig  `mapstructure:"school"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Port        string `mapstructure:"port"`
	// TestingMode notifies recipients even when a snow day is unlikely.
	TestingMode bool `mapstructure:"testing_mode"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PageConfig struct {
	TemplateFile    string `mapstructure:"template_file"`
	DateOffsetDays  int    `mapstructure:"date_offset_days"`
	ResourceBaseURL string `mapstructure:"resource_base_url"`
	ResourcePath    string `mapstructure:"resource_path"`
}

type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

type RedisConfig struct {
	Address       string        `mapstructure:"address"`
	Password      string        `mapstructure:"password"`
	DB            int           `mapstructure:"db"`
	RefreshLimit  int           `mapstructure:"refresh_limit"`
	RefreshWindow time.Duration `mapstructure:"refresh_window"`
}

type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GenAIConfig struct {
	Project       string        `mapstructure:"project"`
	Location      string        `mapstructure:"location"`
	APIKey        string        `mapstructure:"api_key"`
	PrimaryModel  string        `mapstructure:"primary_model"`
	FallbackModel string        `mapstructure:"fallback_model"`
	JudgeModel    string        `mapstructure:"judge_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether enough is configured to reach a model.
func (g GenAIConfig) Enabled() bool {
	return g.APIKey != "" || g.Project != ""
}

type SchoolConfig struct {
	Name       string `mapstructure:"name"`
	State      string `mapstructure:"state"`
	City       string `mapstructure:"city"`
	County     string `mapstructure:"county"`
	ZipCode    string `mapstructure:"zip_code"`
	StartTime  string `mapstructure:"start_time"`
	Timezone   string `mapstructure:"timezone"`
	PolicyFile string `mapstructure:"policy_file"`
}

func (s SchoolConfig) Entity() entity.School {
	return entity.School{
		Name:      s.Name,
		State:     s.State,
		City:      s.City,
		County:    s.County,
		ZipCode:   s.ZipCode,
		StartTime: s.StartTime,
		Timezone:  s.Timezone,
	}
}

type NotifyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
	From    string `mapstructure:"from"`
	Subject string `mapstructure:"subject"`
	// RecipientsJSON maps email address to display name, e.g. {"a@b.com": "Ann"}.
	RecipientsJSON string `mapstructure:"recipients"`
}

// Recipients decodes RecipientsJSON, sorted by address.
func (n NotifyConfig) Recipients() ([]entity.Recipient, error) {
	if n.RecipientsJSON == "" {
		return nil, nil
	}
	var byEmail map[string]string
	if err := json.Unmarshal([]byte(n.RecipientsJSON), &byEmail); err != nil {
		return nil, fmt.Errorf("failed to decode notify recipients: %w", err)
	}
	out := make([]entity.Recipient, 0, len(byEmail))
	for email, name := range byEmail {
		out = append(out, entity.Recipient{Email: email, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SNOWDAY"

// legacyEnv maps config keys to the plain environment names the service
// has always honoured.
var legacyEnv = map[string][]string{
	"app.port":          {"PORT"},
	"app.version":       {"APP_VERSION"},
	"app.environment":   {"ENV", "APP_ENVIRONMENT"},
	"redis.address":     {"REDIS_ADDR"},
	"redis.password":    {"REDIS_PASSWORD"},
	"weather.api_key":   {"WEATHERAPI_KEY"},
	"genai.project":     {"GOOGLE_CLOUD_PROJECT"},
	"genai.location":    {"GOOGLE_CLOUD_LOCATION"},
	"genai.api_key":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"notify.recipients": {"PERSONAL_TESTING_EMAILS"},
	"notify.region":     {"AWS_REGION"},
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty configFile
// searches ./configs and the working directory for config.yaml.
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envKey := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, envKey}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first of .env.dev and .env that exists. A missing
// file is fine; an unreadable or malformed one is not.
func loadEnvFile() error {
	for _, path := range []string{".env.dev", ".env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "snowday")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.testing_mode", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("page.template_file", "")
	v.SetDefault("page.date_offset_days", 1)
	v.SetDefault("page.resource_base_url", "")
	v.SetDefault("page.resource_path", "prediction.txt")

	v.SetDefault("storage.dir", "data")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.refresh_limit", 3)
	v.SetDefault("redis.refresh_window", time.Hour)

	v.SetDefault("weather.base_url", "http://api.weatherapi.com/v1/")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.timeout", 30*time.Second)

	v.SetDefault("genai.project", "")
	v.SetDefault("genai.location", "us-central1")
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.primary_model", "gemini-2.5-flash")
	v.SetDefault("genai.fallback_model", "gemini-2.0-flash")
	v.SetDefault("genai.judge_model", "gemini-2.5-flash")
	v.SetDefault("genai.timeout", 60*time.Second)

	v.SetDefault("school.name", "Rockford Public Schools")
	v.SetDefault("school.state", "Michigan")
	v.SetDefault("school.city", "Rockford")
	v.SetDefault("school.county", "Kent")
	v.SetDefault("school.zip_code", "49341")
	v.SetDefault("school.start_time", "7:45 AM")
	v.SetDefault("school.timezone", "America/Detroit")
	v.SetDefault("school.policy_file", "")

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from", "")
	v.SetDefault("notify.subject", "Snow day prediction")
	v.SetDefault("notify.recipients", "")
}

func applyDefaults(cfg *Config) {
	if cfg.Page.ResourceBaseURL == "" {
		cfg.Page.ResourceBaseURL = "http://127.0.0.1:" + cfg.App.Port + "/"
	}
	if cfg.Page.ResourcePath == "" {
		cfg.Page.ResourcePath = "prediction.txt"
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 30 * time.Second
	}
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return errors.New("app.port is required")
	}
	if cfg.Page.DateOffsetDays != 0 && cfg.Page.DateOffsetDays != 1 {
		return fmt.Errorf("page.date_offset_days must be 0 (today) or 1 (tomorrow), got %d", cfg.Page.DateOffsetDays)
	}
	if u, err := url.Parse(cfg.Page.ResourceBaseURL); err != nil || !u.IsAbs() {
		return fmt.Errorf("page.resource_base_url must be an absolute URL, got %q", cfg.Page.ResourceBaseURL)
	}
	if cfg.Redis.RefreshLimit <= 0 {
		return errors.New("redis.refresh_limit must be positive")
	}
	if cfg.Redis.RefreshWindow <= 0 {
		return errors.New("redis.refresh_window must be positive")
	}
	if _, err := time.LoadLocation(cfg.School.Timezone); err != nil {
		return fmt.Errorf("school.timezone: %w", err)
	}
	if _, err := cfg.Notify.Recipients(); err != nil {
		return err
	}
	if cfg.Notify.Enabled && cfg.Notify.From == "" {
		return errors.New("notify.from is required when notifications are enabled")
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tennis-watch/types"
)

// ConfigError reports an invalid configuration value. It is always raised
// before any network call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Config holds everything the watcher needs for one invocation.
type Config struct {
	Criteria types.SearchCriteria
	Detailed bool

	APIBaseURL  string
	HTTPTimeout time.Duration

	StateBackend  string // "file" or "redis"
	StateFile     string
	RedisAddr     string
	RedisPassword string

	WebhookURL     string
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from .env (optional) and environment variables.
// now supplies the defaults for the date fields.
func Load(now time.Time) (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		APIBaseURL:    getEnv("API_BASE_URL", "https://tennis.example.fr"),
		StateBackend:  getEnv("STATE_BACKEND", "file"),
		StateFile:     getEnv("STATE_FILE", "data/last_result.json"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	timeout, err := getEnvAsInt("HTTP_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second

	if cfg.StateBackend != "file" && cfg.StateBackend != "redis" {
		return nil, &ConfigError{Field: "STATE_BACKEND", Reason: "must be \"file\" or \"redis\""}
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ConfigError{Field: "TELEGRAM_CHAT_ID", Reason: "not an integer"}
		}
		cfg.TelegramChatID = id
	}

	cfg.Detailed, err = getEnvAsBool("DETAILED", false)
	if err != nil {
		return nil, err
	}

	criteria, err := loadCriteria(now)
	if err != nil {
		return nil, err
	}
	cfg.Criteria = *criteria

	return cfg, nil
}

func loadCriteria(now time.Time) (*types.SearchCriteria, error) {
	c := &types.SearchCriteria{}

	var err error
	c.HourRangeStart, err = getEnvAsInt("HOUR_RANGE_START", 8)
	if err != nil {
		return nil, err
	}
	c.HourRangeEnd, err = getEnvAsInt("HOUR_RANGE_END", 22)
	if err != nil {
		return nil, err
	}
	if c.HourRangeStart < 0 || c.HourRangeStart > 23 {
		return nil, &ConfigError{Field: "HOUR_RANGE_START", Reason: "must be between 0 and 23"}
	}
	if c.HourRangeEnd < 0 || c.HourRangeEnd > 23 {
		return nil, &ConfigError{Field: "HOUR_RANGE_END", Reason: "must be between 0 and 23"}
	}
	if c.HourRangeStart >= c.HourRangeEnd {
		return nil, &ConfigError{Field: "HOUR_RANGE_START", Reason: "must be before HOUR_RANGE_END"}
	}

	c.WhenDay, err = getEnvAsInt("WHEN_DAY", now.Day())
	if err != nil {
		return nil, err
	}
	c.WhenMonth, err = getEnvAsInt("WHEN_MONTH", int(now.Month()))
	if err != nil {
		return nil, err
	}
	c.WhenYear, err = getEnvAsInt("WHEN_YEAR", now.Year())
	if err != nil {
		return nil, err
	}
	if !validDate(c.WhenDay, c.WhenMonth, c.WhenYear) {
		return nil, &ConfigError{
			Field:  "WHEN_DAY/WHEN_MONTH/WHEN_YEAR",
			Reason: fmt.Sprintf("%02d/%02d/%04d is not a calendar date", c.WhenDay, c.WhenMonth, c.WhenYear),
		}
	}

	facilities := getEnv("FACILITIES", "")
	for _, name := range strings.Split(facilities, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			c.Facilities = append(c.Facilities, name)
		}
	}
	if len(c.Facilities) == 0 {
		return nil, &ConfigError{Field: "FACILITIES", Reason: "at least one facility name is required"}
	}

	c.CourtNumbers, err = parseCourtNumbers(os.Getenv("COURT_NUMBERS"))
	if err != nil {
		return nil, err
	}

	c.CoveredOnly, err = getEnvAsBool("COVERED_ONLY", false)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// validDate rejects impossible combinations (e.g. 30/02) instead of letting
// time.Date normalize them into a different day.
func validDate(day, month, year int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Day() == day && int(d.Month()) == month && d.Year() == year
}

// parseCourtNumbers accepts either a JSON object ({"Facility":[1,2]}) or the
// compact form "Facility:1;2,Other:5". Empty input means no restriction.
func parseCourtNumbers(raw string) (map[string][]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "{") {
		out := make(map[string][]int)
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, &ConfigError{Field: "COURT_NUMBERS", Reason: "malformed JSON object"}
		}
		return out, nil
	}

	out := make(map[string][]int)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, nums, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &ConfigError{Field: "COURT_NUMBERS", Reason: fmt.Sprintf("entry %q is not of the form Name:1;2", entry)}
		}
		for _, ns := range strings.Split(nums, ";") {
			ns = strings.TrimSpace(ns)
			if ns == "" {
				continue
			}
			n, err := strconv.Atoi(ns)
			if err != nil {
				return nil, &ConfigError{Field: "COURT_NUMBERS", Reason: fmt.Sprintf("%q is not a court number", ns)}
			}
			out[name] = append(out[name], n)
		}
	}
	return out, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Reason: "not an integer"}
	}
	return v, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ConfigError{Field: key, Reason: "not a boolean"}
	}
	return v, nil
}

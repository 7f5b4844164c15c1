package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Google Books caps maxResults at 40.
const maxRecommendLimit = 40

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) validate() []string {
	var errs []string

	// books
	b := c.Books
	if b.RecommendLimit < 1 || b.RecommendLimit > maxRecommendLimit {
		errs = append(errs, fmt.Sprintf("books.recommendLimit must be between 1 and %d", maxRecommendLimit))
	}
	if b.RequestsPerSecond < 0 {
		errs = append(errs, "books.requestsPerSecond must be non-negative")
	}
	if b.TimeoutSeconds < 0 {
		errs = append(errs, "books.timeoutSeconds must be non-negative")
	}

	// discord
	if c.Discord.Intents < 0 {
		errs = append(errs, "discord.intents must be non-negative")
	}

	// log
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}

	return errs
}

// RequireGateway reports what is missing to connect to Discord and
// serve book commands.
func (c *Config) RequireGateway() error {
	var missing []string
	if c.Discord.Token == "" {
		missing = append(missing, "discord.token ("+EnvDiscordToken+")")
	}
	if c.Books.APIKey == "" {
		missing = append(missing, "books.apiKey ("+EnvGoogleAPIKey+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CheckUnknownFields walks the raw config map and returns paths of any keys
// that do not correspond to known Config struct fields.
func CheckUnknownFields(raw map[string]any) []string {
	result := checkUnknownFields(raw, reflect.TypeOf(Config{}), "")
	sort.Strings(result)
	return result
}

func checkUnknownFields(data map[string]any, t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	known := jsonFieldMap(t)
	var unknown []string
	for key, val := range data {
		ft, ok := known[key]
		if !ok {
			unknown = append(unknown, joinPath(prefix, key))
			continue
		}
		if nested, ok := val.(map[string]any); ok {
			unknown = append(unknown, checkUnknownFields(nested, ft, joinPath(prefix, key))...)
		}
	}
	return unknown
}

func jsonFieldMap(t reflect.Type) map[string]reflect.Type {
	m := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			m[name] = f.Type
		}
	}
	return m
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

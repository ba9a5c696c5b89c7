package plugin

import "time"

// Settings is the configuration mapping supplied when a plugin is
// registered. It is passed once at registration and owned by the plugin
// instance for the duration of its lifecycle.
//
// There is no universal schema: each variant documents the keys it
// requires (commonly "api_key", "base_url", "enabled" plus
// provider-specific identifiers) and validates them in ValidateConfig.
type Settings map[string]any

// String returns the string value for key, or "" when the key is absent
// or holds a non-string value.
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// StringOr returns the string value for key, or def when the key is
// absent or holds a non-string value.
func (s Settings) StringOr(key, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// BoolOr returns the boolean value for key, or def when the key is absent
// or holds a non-boolean value.
func (s Settings) BoolOr(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

// IntOr returns the integer value for key, or def when the key is absent
// or cannot be interpreted as an integer. JSON and YAML decoders may
// produce int or float64 for numeric values; both are accepted.
func (s Settings) IntOr(key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// DurationOr returns the duration for key, or def when the key is absent
// or malformed. Accepts Go duration strings (e.g. "30s") and bare
// numbers, interpreted as seconds.
func (s Settings) DurationOr(key string, def time.Duration) time.Duration {
	switch v := s[key].(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return def
}

// Map returns the nested mapping for key, or nil when the key is absent
// or holds a different shape.
func (s Settings) Map(key string) map[string]any {
	v, _ := s[key].(map[string]any)
	return v
}

// Enabled reports whether the instance is enabled. Missing keys default
// to true, matching registration-time expectations: a plugin that is
// registered is live unless explicitly disabled.
func (s Settings) Enabled() bool {
	return s.BoolOr("enabled", true)
}

// Clone returns a shallow copy of the settings. The registry clones
// settings before handing them to a factory so that later mutation by the
// caller cannot reach into a registered instance.
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	cp := make(Settings, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

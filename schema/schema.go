package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// JSON represents a JSON Schema definition for plugin settings.
type JSON struct {
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Properties  map[string]JSON `json:"properties,omitempty"`
	Required    []string        `json:"required,omitempty"`
	Items       *JSON           `json:"items,omitempty"`
	Enum        []any           `json:"enum,omitempty"`
	Default     any             `json:"default,omitempty"`
	Minimum     *float64        `json:"minimum,omitempty"`
	Maximum     *float64        `json:"maximum,omitempty"`
	MinLength   *int            `json:"minLength,omitempty"`
	MaxLength   *int            `json:"maxLength,omitempty"`
	Pattern     string          `json:"pattern,omitempty"`
}

// Any creates a schema that accepts any type.
func Any() JSON {
	return JSON{}
}

// String creates a schema for a string type.
func String() JSON {
	return JSON{Type: "string"}
}

// StringWithDesc creates a schema for a string type with a description.
func StringWithDesc(desc string) JSON {
	return JSON{
		Type:        "string",
		Description: desc,
	}
}

// NonEmptyString creates a schema for a string that must not be empty.
// Plugin credentials and endpoints use this so that a present-but-blank
// key is rejected the same way as a missing one.
func NonEmptyString(desc string) JSON {
	one := 1
	return JSON{
		Type:        "string",
		Description: desc,
		MinLength:   &one,
	}
}

// Int creates a schema for an integer type.
func Int() JSON {
	return JSON{Type: "integer"}
}

// Number creates a schema for a number type.
func Number() JSON {
	return JSON{Type: "number"}
}

// Bool creates a schema for a boolean type.
func Bool() JSON {
	return JSON{Type: "boolean"}
}

// Array creates a schema for an array type with the given item schema.
func Array(items JSON) JSON {
	return JSON{
		Type:  "array",
		Items: &items,
	}
}

// Object creates a schema for an object type with the given properties
// and required keys.
func Object(properties map[string]JSON, required ...string) JSON {
	return JSON{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Enum creates a schema with enumerated values.
func Enum(values ...any) JSON {
	return JSON{Enum: values}
}

// Validate validates the given value against this schema.
// It returns an error describing the first violation found.
func (s JSON) Validate(value any) error {
	if value == nil {
		if s.Type != "" {
			return fmt.Errorf("expected type %s, got nil", s.Type)
		}
		return nil
	}

	if len(s.Enum) > 0 {
		for _, allowed := range s.Enum {
			if value == allowed {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of the allowed values %v", value, s.Enum)
	}

	switch s.Type {
	case "":
		return nil
	case "string":
		return s.validateString(value)
	case "integer":
		return s.validateInteger(value)
	case "number":
		return s.validateNumber(value)
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
		return nil
	case "array":
		return s.validateArray(value)
	case "object":
		return s.validateObject(value)
	default:
		return fmt.Errorf("unknown schema type: %s", s.Type)
	}
}

func (s JSON) validateString(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if s.MinLength != nil && len(str) < *s.MinLength {
		return fmt.Errorf("string length %d is below minimum %d", len(str), *s.MinLength)
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		return fmt.Errorf("string length %d exceeds maximum %d", len(str), *s.MaxLength)
	}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", s.Pattern, err)
		}
		if !re.MatchString(str) {
			return fmt.Errorf("string %q does not match pattern %q", str, s.Pattern)
		}
	}
	return nil
}

func (s JSON) validateInteger(value any) error {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("expected integer, got %v", v)
		}
		n = v
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
	return s.validateRange(n)
}

func (s JSON) validateNumber(value any) error {
	var n float64
	switch v := value.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		n = v
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
	return s.validateRange(n)
}

func (s JSON) validateRange(n float64) error {
	if s.Minimum != nil && n < *s.Minimum {
		return fmt.Errorf("value %v is below minimum %v", n, *s.Minimum)
	}
	if s.Maximum != nil && n > *s.Maximum {
		return fmt.Errorf("value %v exceeds maximum %v", n, *s.Maximum)
	}
	return nil
}

func (s JSON) validateArray(value any) error {
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected array, got %T", value)
	}
	if s.Items == nil {
		return nil
	}
	for i, item := range arr {
		if err := s.Items.Validate(item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func (s JSON) validateObject(value any) error {
	obj, ok := toStringMap(value)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}

	var missing []string
	for _, key := range s.Required {
		if _, present := obj[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}

	for key, propSchema := range s.Properties {
		v, present := obj[key]
		if !present {
			continue
		}
		if err := propSchema.Validate(v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}

// toStringMap normalizes the map shapes settings arrive in.
func toStringMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	}
	return nil, false
}

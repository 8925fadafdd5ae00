// internal/common/validation/schema.go
package validation

import "fmt"

// Property constrains one field of a JSON object. Types lists the JSON
// types the field may carry; several are allowed because preference fields
// accept both scalar and collection forms.
type Property struct {
	Types []string `json:"types"`
	Enum  []string `json:"enum,omitempty"`
}

// Schema describes the accepted shape of a JSON object.
type Schema struct {
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
	// AdditionalProperties permits fields the schema does not name.
	AdditionalProperties bool `json:"additionalProperties,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate checks input against the schema. Only structural violations are
// reported; value-level normalization is left to the caller.
func Validate(input map[string]interface{}, schema Schema) *Result {
	errors := []ValidationError{}

	for _, required := range schema.Required {
		if _, exists := input[required]; !exists {
			errors = append(errors, ValidationError{
				Field:   required,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for field, value := range input {
		prop, exists := schema.Properties[field]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   field,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}

		if fieldErrors := validateField(field, value, prop); len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
		}
	}

	return &Result{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateField(field string, value interface{}, prop Property) []ValidationError {
	// null is treated as absent
	if value == nil {
		return nil
	}

	actual := jsonType(value)

	if len(prop.Types) > 0 {
		allowed := false
		for _, t := range prop.Types {
			if t == actual {
				allowed = true
				break
			}
		}
		if !allowed {
			return []ValidationError{{
				Field:   field,
				Message: fmt.Sprintf("expected one of %v, got %s", prop.Types, actual),
				Code:    "TYPE_MISMATCH",
			}}
		}
	}

	if len(prop.Enum) > 0 && actual == "string" {
		str := value.(string)
		for _, allowed := range prop.Enum {
			if str == allowed {
				return nil
			}
		}
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("value %q not in allowed set %v", str, prop.Enum),
			Code:    "ENUM_MISMATCH",
		}}
	}

	return nil
}

// jsonType names the JSON type of a decoded value the way schemas refer to
// them: string, number, boolean, array or object.
func jsonType(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return "unknown"
	}
}

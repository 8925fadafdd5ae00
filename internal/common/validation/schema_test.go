package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSchema() Schema {
	return Schema{
		Properties: map[string]Property{
			"brands": {Types: []string{"string", "array"}},
			"budget": {Types: []string{"string", "number", "object"}},
			"gender": {Types: []string{"string"}},
			"limit":  {Types: []string{"number"}},
		},
		AdditionalProperties: true,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]interface{}
		valid      bool
		errorCode  string
		errorField string
	}{
		{
			name:  "empty object passes",
			input: map[string]interface{}{},
			valid: true,
		},
		{
			name: "multiple accepted types",
			input: map[string]interface{}{
				"brands": []interface{}{"Toyota"},
				"budget": "20000-30000",
			},
			valid: true,
		},
		{
			name: "scalar form of a collection field",
			input: map[string]interface{}{
				"brands": "Toyota",
				"budget": 30000.0,
			},
			valid: true,
		},
		{
			name: "object budget",
			input: map[string]interface{}{
				"budget": map[string]interface{}{"min": 10000.0, "max": 30000.0},
			},
			valid: true,
		},
		{
			name:       "wrong type rejected",
			input:      map[string]interface{}{"limit": "five"},
			valid:      false,
			errorCode:  "TYPE_MISMATCH",
			errorField: "limit",
		},
		{
			name:       "boolean where string expected",
			input:      map[string]interface{}{"gender": true},
			valid:      false,
			errorCode:  "TYPE_MISMATCH",
			errorField: "gender",
		},
		{
			name:  "null treated as absent",
			input: map[string]interface{}{"brands": nil},
			valid: true,
		},
		{
			name:  "unknown fields tolerated",
			input: map[string]interface{}{"session_id": "abc"},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input, testSchema())
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
				assert.Equal(t, tt.errorField, result.Errors[0].Field)
				assert.Equal(t, tt.errorCode, result.Errors[0].Code)
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	schema := Schema{
		Properties:           map[string]Property{"gender": {Types: []string{"string"}}},
		Required:             []string{"gender"},
		AdditionalProperties: true,
	}

	result := Validate(map[string]interface{}{}, schema)
	assert.False(t, result.Valid)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", result.Errors[0].Code)
}

func TestValidate_ClosedSchemaRejectsExtras(t *testing.T) {
	schema := Schema{
		Properties: map[string]Property{"gender": {Types: []string{"string"}}},
	}

	result := Validate(map[string]interface{}{"extra": 1.0}, schema)
	assert.False(t, result.Valid)
	assert.Equal(t, "EXTRA_FIELD", result.Errors[0].Code)
}

func TestValidate_Enum(t *testing.T) {
	schema := Schema{
		Properties: map[string]Property{
			"backend": {Types: []string{"string"}, Enum: []string{"neo4j", "postgres"}},
		},
	}

	assert.True(t, Validate(map[string]interface{}{"backend": "neo4j"}, schema).Valid)

	result := Validate(map[string]interface{}{"backend": "mysql"}, schema)
	assert.False(t, result.Valid)
	assert.Equal(t, "ENUM_MISMATCH", result.Errors[0].Code)
}

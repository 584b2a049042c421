package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

// Answers are always strings, including ratings ("7") and bucket labels.
const responsesSchema = `{
	"type": "object",
	"additionalProperties": {"type": "string"}
}`

var scoreRequestSchema = `{
	"type": "object",
	"required": ["responses"],
	"properties": {
		"responses": ` + responsesSchema + `,
		"industry": {"type": "string"},
		"revenue_range": {"type": "string"},
		"years_in_business": {"type": "string"},
		"exit_timeline": {"type": "string"},
		"research_data": {"type": "object"}
	}
}`

var personalizeRequestSchema = `{
	"type": "object",
	"required": ["anonymized_responses"],
	"properties": {
		"anonymized_responses": ` + responsesSchema + `,
		"industry": {"type": "string"},
		"years_in_business": {"type": "string"},
		"revenue_range": {"type": "string"},
		"location": {"type": "string"},
		"exit_timeline": {"type": "string"}
	}
}`

// validateDocument checks a decoded request document against schema.
func validateDocument(schema string, doc any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return eris.Wrap(err, "validate request")
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return eris.Errorf("invalid request: %s", strings.Join(errs, "; "))
	}
	return nil
}

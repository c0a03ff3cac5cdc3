package model

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resumetuner/internal/domain"
)

//go:embed schema/optimize_request.schema.json
var optimizeSchema string

var optimizeLoader = gojsonschema.NewStringLoader(optimizeSchema)

// ParseOptimizeRequest validates body against the optimize request schema
// and decodes it. Violations are reported as input validation errors.
func ParseOptimizeRequest(body []byte) (OptimizeRequest, error) {
	var req OptimizeRequest
	if len(body) == 0 {
		return req, domain.Invalid("request body is empty")
	}
	if err := validate(optimizeLoader, gojsonschema.NewBytesLoader(body)); err != nil {
		return req, err
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, domain.Invalidf("malformed JSON: %v", err)
	}
	return req, nil
}

func validate(schema, doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schema, doc)
	if err != nil {
		return domain.Invalidf("malformed JSON: %v", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return domain.Invalid("schema validation failed: " + strings.Join(msgs, "; "))
}

// Package report inspects and validates JSON reports produced by the JSON
// formatter.
package report

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/report.schema.json
var reportSchema []byte

// Query extracts a value from a JSON report using a gjson path, e.g.
// "summary.failed" or "cases.#(name==\"queue_properties\").passed".
func Query(reportPath, path string) (string, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%s is not valid JSON", reportPath)
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return "", fmt.Errorf("path %q not found in report", path)
	}

	return result.String(), nil
}

// Validate checks a JSON report against the embedded report schema.
func Validate(reportPath string) error {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(reportSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("report is invalid: %s", strings.Join(problems, "; "))
}

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	apierrors "github.com/diogo/llmchat/internal/errors"
)

// Path to the response list inside a responses document
const pathResponses = "responses"

// LoadResponses reads canned responses from a JSON document of the form
// {"responses": ["...", "..."]}. Files ending in .yaml or .yml are read
// as YAML with the same shape.
func LoadResponses(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseResponsesYAML(data)
	default:
		return ParseResponses(data)
	}
}

// responsesDocument is the YAML shape of a responses file
type responsesDocument struct {
	Responses yaml.Node `yaml:"responses"`
}

// ParseResponsesYAML extracts canned responses from a YAML document
func ParseResponsesYAML(data []byte) ([]string, error) {
	var doc responsesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apierrors.NewParseError("responses document is not valid YAML: "+err.Error(), "")
	}
	if doc.Responses.Kind == 0 {
		return nil, apierrors.NewParseError("missing responses array", pathResponses)
	}
	if doc.Responses.Kind != yaml.SequenceNode {
		return nil, apierrors.NewParseError("responses must be an array", pathResponses)
	}

	responses := make([]string, 0, len(doc.Responses.Content))
	for i, item := range doc.Responses.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" || strings.TrimSpace(item.Value) == "" {
			return nil, apierrors.NewParseError("each response must be a non-empty string",
				fmt.Sprintf("%s.%d", pathResponses, i))
		}
		responses = append(responses, item.Value)
	}

	if len(responses) == 0 {
		return nil, apierrors.NewParseError("responses array is empty", pathResponses)
	}
	return responses, nil
}

// ParseResponses extracts canned responses from a JSON document
func ParseResponses(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("responses document is not valid JSON", "")
	}

	list := gjson.GetBytes(data, pathResponses)
	if !list.Exists() {
		return nil, apierrors.NewParseError("missing responses array", pathResponses)
	}
	if !list.IsArray() {
		return nil, apierrors.NewParseError("responses must be an array", pathResponses)
	}

	var (
		responses []string
		parseErr  error
	)
	list.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String || strings.TrimSpace(value.String()) == "" {
			parseErr = apierrors.NewParseError("each response must be a non-empty string",
				fmt.Sprintf("%s.%d", pathResponses, key.Int()))
			return false
		}
		responses = append(responses, value.String())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if len(responses) == 0 {
		return nil, apierrors.NewParseError("responses array is empty", pathResponses)
	}

	return responses, nil
}

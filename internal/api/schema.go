package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Response schemas, validated before decoding. The backend is a plain
// JSON service outside our control; validating here keeps malformed or
// partial payloads from leaking undefined values into the engines.
var responseSchemas = map[string]any{
	"questions": map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "question_text", "options", "correct_answer"},
			"properties": map[string]any{
				"id":            map[string]any{"type": "integer"},
				"question_text": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correct_answer": map[string]any{"type": "string"},
				"type":           map[string]any{"type": "string"},
			},
		},
	},
	"submission-ack": map[string]any{
		"type": "object",
	},
	"history": map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"score"},
			"properties": map[string]any{
				"id":           map[string]any{"type": "integer"},
				"assessmentId": map[string]any{"type": "integer"},
				"skillId":      map[string]any{"type": "integer"},
				"title":        map[string]any{"type": "string"},
				"score":        map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"category":     map[string]any{"type": "string"},
				"completed_at": map[string]any{"type": "string"},
			},
		},
	},
	"skill-page": map[string]any{
		"type":     "object",
		"required": []any{"skills", "hasMore"},
		"properties": map[string]any{
			"skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "name", "category"},
					"properties": map[string]any{
						"id":              map[string]any{"type": "integer"},
						"name":            map[string]any{"type": "string"},
						"category":        map[string]any{"type": "string"},
						"description":     map[string]any{"type": "string"},
						"difficulty":      map[string]any{"type": "string"},
						"assessmentCount": map[string]any{"type": "integer"},
						"proficiency":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					},
				},
			},
			"hasMore": map[string]any{"type": "boolean"},
		},
	},
	"assessments": map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "title"},
			"properties": map[string]any{
				"id":    map[string]any{"type": "integer"},
				"title": map[string]any{"type": "string"},
			},
		},
	},
	"profile": map[string]any{
		"type":     "object",
		"required": []any{"id", "name"},
		"properties": map[string]any{
			"id":   map[string]any{"type": "integer"},
			"name": map[string]any{"type": "string"},
		},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw against the named response schema. Returns
// *ErrInvalidPayload on malformed JSON or a schema mismatch.
func validatePayload(endpoint, name string, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compiledSchema(name)
	if err != nil {
		return &ErrInvalidPayload{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("compile schema %q: %w", name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := responseSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

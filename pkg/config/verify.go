package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:generate go run ../../cmd/schema -o schema.json

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Every field of the config has to be known to the schema and required fields have to be set.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if err := checkProperties(schema, defs, configMap, ""); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkProperties walks value and reports the first object key the schema doesn't describe
func checkProperties(schema, defs map[string]any, value any, path string) error {
	if ref, ok := schema["$ref"].(string); ok {
		name := strings.TrimPrefix(ref, "#/$defs/")
		resolved, ok := defs[name].(map[string]any)
		if !ok {
			return fmt.Errorf("unresolved schema reference %s", ref)
		}
		schema = resolved
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		prop, ok := props[k].(map[string]any)
		if !ok {
			return fmt.Errorf("unknown field %s", strings.TrimPrefix(path+"."+k, "."))
		}
		if err := checkProperties(prop, defs, obj[k], path+"."+k); err != nil {
			return err
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	// check provider defaults
	if cfg.LLM.DefaultChannel.APIBaseURL == "" {
		return fmt.Errorf("llm.default_channel.api_base_url is required")
	}
	if cfg.LLM.DefaultChannel.Model == "" {
		return fmt.Errorf("llm.default_channel.model is required")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

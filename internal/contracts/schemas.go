package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry holds compiled event schemas keyed as "<Name>Event/<major>.0.0".
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

var defaultRegistry *Registry

func init() {
	reg, err := NewRegistry(schemas.SchemasFS)
	if err != nil {
		log.Fatalf("failed to compile embedded event schemas: %v", err)
	}
	defaultRegistry = reg
}

// NewRegistry compiles every events/<name>/v<N>.json file in fsys.
func NewRegistry(fsys fs.FS) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	// resources first, so schemas may $ref each other
	err := fs.WalkDir(fsys, "events", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("open schema %s: %w", path, err)
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	reg := &Registry{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key := generateKeyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not match events/<name>/v<N>.json", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", path, err)
		}
		reg.schemas[key] = schema
	}
	return reg, nil
}

// generateKeyFromPath turns "events/property-submitted/v1.json" into
// "PropertySubmittedEvent/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "events/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Event")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// Validate checks body against the schema registered for eventType/eventVersion.
func (r *Registry) Validate(eventType, eventVersion string, body []byte) error {
	key := fmt.Sprintf("%s/%s", eventType, eventVersion)
	schema, ok := r.schemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// ValidateEvent validates against the embedded schemas.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return defaultRegistry.Validate(eventType, eventVersion, body)
}

package mcpserver

import (
	"encoding/json"
	"testing"
)

func TestToolDefinitionsSchemasAreValidJSON(t *testing.T) {
	for _, td := range GetToolDefinitions() {
		t.Run(td.Name, func(t *testing.T) {
			var schema map[string]interface{}
			if err := json.Unmarshal(td.InputSchema, &schema); err != nil {
				t.Fatalf("schema is not valid JSON: %v", err)
			}
			if schema["type"] != "object" {
				t.Errorf("schema type = %v, want object", schema["type"])
			}
			if td.Description == "" {
				t.Error("tool has no description")
			}
		})
	}
}

func TestToolDefinitionsCoverAllOperations(t *testing.T) {
	want := []string{
		"get_image_metadata",
		"transcode_image",
		"list_categories",
		"get_resized_image",
		"upload_image",
		"upload_and_resize_image",
	}

	defs := GetToolDefinitions()
	if len(defs) != len(want) {
		t.Fatalf("len(defs) = %d, want %d", len(defs), len(want))
	}
	for i, name := range want {
		if defs[i].Name != name {
			t.Errorf("defs[%d].Name = %q, want %q", i, defs[i].Name, name)
		}
	}
}

func TestToolRequiredFieldsMatchHandlers(t *testing.T) {
	required := map[string][]string{
		"get_image_metadata":      {"imageServiceId"},
		"transcode_image":         {"imageServiceId"},
		"list_categories":         nil,
		"get_resized_image":       {"imageServiceId", "size"},
		"upload_image":            {"category", "filename"},
		"upload_and_resize_image": {"category", "filename"},
	}

	for _, td := range GetToolDefinitions() {
		t.Run(td.Name, func(t *testing.T) {
			var schema struct {
				Required []string `json:"required"`
			}
			if err := json.Unmarshal(td.InputSchema, &schema); err != nil {
				t.Fatal(err)
			}

			want, ok := required[td.Name]
			if !ok {
				t.Fatalf("unexpected tool %q", td.Name)
			}
			if len(schema.Required) != len(want) {
				t.Fatalf("required = %v, want %v", schema.Required, want)
			}
			for i := range want {
				if schema.Required[i] != want[i] {
					t.Errorf("required[%d] = %q, want %q", i, schema.Required[i], want[i])
				}
			}
		})
	}
}

package mcpserver

import (
	"encoding/json"
)

// ToolDefinition defines a tool for the MCP SDK
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// GetToolDefinitions returns tool definitions for the official MCP SDK
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// 1. Image metadata
		{
			Name:        "get_image_metadata",
			Description: "Fetch metadata for an image by its image service ID, including category and available resized files.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"imageServiceId": {
						"type": "string",
						"description": "Image service ID of the image"
					}
				},
				"required": ["imageServiceId"]
			}`),
		},

		// 2. Transcode
		{
			Name:        "transcode_image",
			Description: "Trigger transcoding of an image into all sizes configured for its category.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"imageServiceId": {
						"type": "string",
						"description": "Image service ID of the image to transcode"
					}
				},
				"required": ["imageServiceId"]
			}`),
		},

		// 3. Category list
		{
			Name:        "list_categories",
			Description: "List all image categories with the sizes (dimensions and MIME types) available in each.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {}
			}`),
		},

		// 4. Resized image URL
		{
			Name:        "get_resized_image",
			Description: "Get a signed download URL for a resized rendition of an image.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"imageServiceId": {
						"type": "string",
						"description": "Image service ID of the image"
					},
					"size": {
						"type": "string",
						"description": "Size name (e.g. 'thumbnail'); use list_categories to discover available sizes"
					}
				},
				"required": ["imageServiceId", "size"]
			}`),
		},

		// 5. Upload
		{
			Name:        "upload_image",
			Description: "Upload a local image file into a category. Resizing happens later in the background.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category": {
						"type": "string",
						"description": "Category to upload into"
					},
					"filename": {
						"type": "string",
						"description": "Path to the local image file"
					}
				},
				"required": ["category", "filename"]
			}`),
		},

		// 6. Upload with immediate resize
		{
			Name:        "upload_and_resize_image",
			Description: "Upload a local image file into a category and resize it immediately instead of in the background.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"category": {
						"type": "string",
						"description": "Category to upload into"
					},
					"filename": {
						"type": "string",
						"description": "Path to the local image file"
					}
				},
				"required": ["category", "filename"]
			}`),
		},
	}
}

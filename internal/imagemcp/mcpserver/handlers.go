// Package mcpserver implements the MCP tool surface for the image service:
// tool definitions plus a handler that translates each call into an HTTP
// request and renders the normalized response as markdown.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
	"github.com/samestrin/llm-image-mcp/pkg/pathvalidation"
)

// Handler processes MCP tool calls against a single image service.
type Handler struct {
	client *imageapi.Client
	sizes  *imageapi.SizeCache
}

// NewHandler creates a handler sharing one client and one size cache across
// all tool calls.
func NewHandler(client *imageapi.Client) *Handler {
	return &Handler{
		client: client,
		sizes:  imageapi.NewSizeCache(client),
	}
}

// Execute dispatches a tool call to its handler. Every failure is reported
// once, as an error the transport layer flags on the result; nothing is
// retried or escalated.
func (h *Handler) Execute(ctx context.Context, toolName string, args map[string]interface{}) (string, error) {
	switch toolName {
	case "get_image_metadata":
		return h.handleGetMetadata(ctx, args)
	case "transcode_image":
		return h.handleTranscode(ctx, args)
	case "list_categories":
		return h.handleListCategories(ctx)
	case "get_resized_image":
		return h.handleGetResized(ctx, args)
	case "upload_image":
		return h.handleUpload(ctx, args, false)
	case "upload_and_resize_image":
		return h.handleUpload(ctx, args, true)
	default:
		return "", fmt.Errorf("unknown tool: %s", toolName)
	}
}

func (h *Handler) handleGetMetadata(ctx context.Context, args map[string]interface{}) (string, error) {
	id, err := stringArg(args, "imageServiceId")
	if err != nil {
		return "", err
	}

	resp, err := h.client.Get(ctx, "/api/image/"+url.PathEscape(id))
	if err != nil {
		return "", err
	}

	meta, err := decodeMetadata(imageapi.Normalize(resp))
	if err != nil {
		return "", err
	}
	return imageapi.FormatMetadata("Image Metadata", meta, h.sizes.Get(ctx)), nil
}

func (h *Handler) handleTranscode(ctx context.Context, args map[string]interface{}) (string, error) {
	id, err := stringArg(args, "imageServiceId")
	if err != nil {
		return "", err
	}

	resp, err := h.client.Post(ctx, "/api/image/"+url.PathEscape(id)+"/transcode")
	if err != nil {
		return "", err
	}

	meta, err := decodeMetadata(imageapi.Normalize(resp))
	if err != nil {
		return "", err
	}
	return imageapi.FormatMetadata("Transcode Requested", meta, h.sizes.Get(ctx)), nil
}

func (h *Handler) handleListCategories(ctx context.Context) (string, error) {
	resp, err := h.client.Get(ctx, imageapi.CategoryListPath)
	if err != nil {
		return "", err
	}

	res := imageapi.Normalize(resp)
	if !res.OK {
		return "", errors.New(res.Message)
	}

	raw := res.Raw
	if !res.Value.IsArray() {
		if wrapped := res.Value.Get("categories"); wrapped.Exists() {
			raw = wrapped.Raw
		}
	}

	var cats []imageapi.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return "", fmt.Errorf("failed to decode category list: %w", err)
	}
	return imageapi.FormatCategories(cats), nil
}

func (h *Handler) handleGetResized(ctx context.Context, args map[string]interface{}) (string, error) {
	id, err := stringArg(args, "imageServiceId")
	if err != nil {
		return "", err
	}
	size, err := stringArg(args, "size")
	if err != nil {
		return "", err
	}

	resp, err := h.client.Get(ctx, "/api/image/s/"+url.PathEscape(id)+"/"+url.PathEscape(size))
	if err != nil {
		return "", err
	}

	res := imageapi.Normalize(resp)
	if !res.OK {
		return "", errors.New(res.Message)
	}
	return imageapi.FormatResizedURL(res), nil
}

func (h *Handler) handleUpload(ctx context.Context, args map[string]interface{}, forceImmediateResize bool) (string, error) {
	category, err := stringArg(args, "category")
	if err != nil {
		return "", err
	}
	filename, err := stringArg(args, "filename")
	if err != nil {
		return "", err
	}
	if err := pathvalidation.CheckUnresolvedTemplateVars(filename); err != nil {
		return "", err
	}

	path := fmt.Sprintf("/api/image/%s?forceImmediateResize=%t", url.PathEscape(category), forceImmediateResize)
	resp, err := h.client.UploadFile(ctx, path, filename)
	if err != nil {
		return "", err
	}

	meta, err := decodeMetadata(imageapi.Normalize(resp))
	if err != nil {
		return "", err
	}
	return imageapi.FormatMetadata("Image Uploaded", meta, h.sizes.Get(ctx)), nil
}

// decodeMetadata turns a normalized response into image metadata, collapsing
// normalizer failures into the single error channel.
func decodeMetadata(res imageapi.Result) (imageapi.ImageMetadata, error) {
	if !res.OK {
		return imageapi.ImageMetadata{}, errors.New(res.Message)
	}

	var meta imageapi.ImageMetadata
	if err := json.Unmarshal([]byte(res.Raw), &meta); err != nil {
		return imageapi.ImageMetadata{}, fmt.Errorf("failed to decode image metadata: %w", err)
	}
	return meta, nil
}

// stringArg extracts a required string argument.
func stringArg(args map[string]interface{}, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

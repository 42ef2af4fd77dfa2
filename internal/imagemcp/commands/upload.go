package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
	"github.com/samestrin/llm-image-mcp/pkg/output"
	"github.com/samestrin/llm-image-mcp/pkg/pathvalidation"
)

func uploadCmd() *cobra.Command {
	var resize bool

	cmd := &cobra.Command{
		Use:   "upload <category> <filename>",
		Short: "Upload a local image file into a category",
		Long: `Upload a local image file into a category. By default resizing
happens later in the background; pass --resize to resize immediately.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd.Context(), cmd, args[0], args[1], resize)
		},
	}

	cmd.Flags().BoolVar(&resize, "resize", false, "Resize immediately instead of in the background")

	return cmd
}

func runUpload(ctx context.Context, cmd *cobra.Command, category, filename string, resize bool) error {
	if err := pathvalidation.CheckUnresolvedTemplateVars(filename); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/image/%s?forceImmediateResize=%t", url.PathEscape(category), resize)
	resp, err := client.UploadFile(ctx, path, filename)
	if err != nil {
		return err
	}

	res := imageapi.Normalize(resp)
	if !res.OK {
		return errors.New(res.Message)
	}

	formatter := output.New(jsonOutput, cmd.OutOrStdout())
	if formatter.JSON {
		return formatter.PrintRaw(res.Raw)
	}

	var meta imageapi.ImageMetadata
	if err := json.Unmarshal([]byte(res.Raw), &meta); err != nil {
		return fmt.Errorf("failed to decode image metadata: %w", err)
	}

	sizes := imageapi.NewSizeCache(client).Get(ctx)
	return formatter.PrintRaw(imageapi.FormatMetadata("Image Uploaded", meta, sizes))
}

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
)

func transcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcode <image-service-id>",
		Short: "Trigger transcoding of an image into its category's sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscode(cmd.Context(), cmd, args[0])
		},
	}
}

func runTranscode(ctx context.Context, cmd *cobra.Command, id string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Post(ctx, "/api/image/"+url.PathEscape(id)+"/transcode")
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
	return formatter.PrintRaw(imageapi.FormatMetadata("Transcode Requested", meta, sizes))
}

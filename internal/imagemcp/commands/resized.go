package commands

import (
	"context"
	"errors"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
	"github.com/samestrin/llm-image-mcp/pkg/output"
)

func resizedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resized <image-service-id> <size>",
		Short: "Get a signed URL for a resized rendition of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResized(cmd.Context(), cmd, args[0], args[1])
		},
	}
}

func runResized(ctx context.Context, cmd *cobra.Command, id, size string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Get(ctx, "/api/image/s/"+url.PathEscape(id)+"/"+url.PathEscape(size))
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
	return formatter.PrintRaw(imageapi.FormatResizedURL(res))
}

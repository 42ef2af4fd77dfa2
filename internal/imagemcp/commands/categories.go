package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
	"github.com/samestrin/llm-image-mcp/pkg/output"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List image categories and their available sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.Context(), cmd)
		},
	}
}

func runCategories(ctx context.Context, cmd *cobra.Command) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Get(ctx, imageapi.CategoryListPath)
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

	raw := res.Raw
	if !res.Value.IsArray() {
		if wrapped := res.Value.Get("categories"); wrapped.Exists() {
			raw = wrapped.Raw
		}
	}

	var cats []imageapi.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return fmt.Errorf("failed to decode category list: %w", err)
	}
	return formatter.PrintRaw(imageapi.FormatCategories(cats))
}

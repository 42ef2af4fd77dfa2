package imageapi

import (
	"fmt"
	"strings"
)

// FormatMetadata renders image metadata as markdown under the given heading.
// Resized files are annotated with dimensions from the size table when the
// size name is known.
func FormatMetadata(heading string, meta ImageMetadata, sizes map[string]CategorySize) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", heading)
	fmt.Fprintf(&b, "- **ID**: %s\n", meta.ID)
	fmt.Fprintf(&b, "- **Category**: %s\n", meta.Category)
	if meta.OriginalS3Path != "" {
		fmt.Fprintf(&b, "- **Original**: %s\n", meta.OriginalS3Path)
	}
	if meta.DownloadedS3Path != "" {
		fmt.Fprintf(&b, "- **Downloaded**: %s\n", meta.DownloadedS3Path)
	}

	if len(meta.ResizedFiles) == 0 {
		b.WriteString("- **Resized files**: no resized files\n")
		return b.String()
	}

	b.WriteString("- **Resized files**:\n")
	for _, rf := range meta.ResizedFiles {
		if size, ok := sizes[rf.Size]; ok {
			fmt.Fprintf(&b, "  - %s (%dx%d, %s): %s\n", rf.Size, size.Width, size.Height, size.MimeType, rf.S3Path)
		} else {
			fmt.Fprintf(&b, "  - %s: %s\n", rf.Size, rf.S3Path)
		}
	}
	return b.String()
}

// FormatCategories renders the category list with per-size dimensions.
func FormatCategories(cats []Category) string {
	var b strings.Builder

	b.WriteString("## Categories\n\n")
	if len(cats) == 0 {
		b.WriteString("No categories defined.\n")
		return b.String()
	}

	for _, cat := range cats {
		fmt.Fprintf(&b, "### %s\n\n", cat.Name)
		if len(cat.Sizes) == 0 {
			b.WriteString("No sizes defined.\n\n")
			continue
		}
		for _, size := range cat.Sizes {
			fmt.Fprintf(&b, "- %s: %dx%d (%s)\n", size.Name, size.Width, size.Height, size.MimeType)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatResizedURL renders the signed URL from a resized-image response, or
// the raw JSON when the response carries no url field.
func FormatResizedURL(res Result) string {
	url := res.Value.Get("url")
	if !url.Exists() {
		return "## Resized Image\n\n```json\n" + res.Raw + "\n```\n"
	}
	return "## Resized Image\n\n" + url.String() + "\n"
}

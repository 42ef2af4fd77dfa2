package imageapi

// CategorySize is a named resizing profile: fixed pixel dimensions and the
// MIME type the service produces for it.
type CategorySize struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mimeType"`
}

// Category groups images that share a set of available sizes. Fetched
// wholesale from the service, never mutated locally.
type Category struct {
	Name  string         `json:"name"`
	Sizes []CategorySize `json:"sizes"`
}

// ResizedFile is one rendition of an image at a named size.
type ResizedFile struct {
	Size   string `json:"size"`
	S3Path string `json:"s3Path"`
}

// ImageMetadata is the service's record for a single image. This client only
// reads and reformats it.
type ImageMetadata struct {
	ID               string        `json:"id"`
	Category         string        `json:"category"`
	DownloadedS3Path string        `json:"downloadedS3Path,omitempty"`
	OriginalS3Path   string        `json:"originalS3Path,omitempty"`
	ResizedFiles     []ResizedFile `json:"resizedFiles,omitempty"`
}

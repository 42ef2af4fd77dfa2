package imageapi

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// maxBodyPreview caps how much of a raw body is echoed into messages and logs.
const maxBodyPreview = 500

// Result is a normalized HTTP response: either a parsed JSON value or a
// human-readable failure message. There is no other error channel.
type Result struct {
	OK      bool
	Value   gjson.Result
	Raw     string
	Message string
}

// Normalize reads and closes the response body and classifies the outcome.
// Non-2xx bodies are sniffed by content type (JSON error object, HTML error
// page, plain text). A 2xx body that is not valid JSON is a caller-visible
// failure, not a transport error.
func Normalize(resp *http.Response) Result {
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Message: fmt.Sprintf("failed to read response body: %v", err)}
	}
	body := string(b)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeFailure(resp.StatusCode, resp.Header.Get("Content-Type"), body)
	}

	if !gjson.Valid(body) {
		slog.Debug("invalid JSON in success response", "status", resp.StatusCode, "body", truncate(body, maxBodyPreview))
		return Result{Message: "Invalid JSON response: " + truncate(body, maxBodyPreview)}
	}

	return Result{OK: true, Value: gjson.Parse(body), Raw: body}
}

// normalizeFailure extracts a readable message from a non-2xx body.
func normalizeFailure(status int, contentType, body string) Result {
	var message string

	switch {
	case strings.Contains(contentType, "application/json"):
		message = jsonErrorMessage(body)
	case strings.Contains(contentType, "text/html"):
		if pre, ok := HTMLPreText(body); ok {
			message = "Server error: " + pre
		} else {
			message = fmt.Sprintf("Server returned HTML error page (status %d)", status)
		}
	default:
		message = body
	}

	slog.Debug("image service error response",
		"status", status,
		"contentType", contentType,
		"body", truncate(body, maxBodyPreview))

	return Result{Message: message}
}

// jsonErrorMessage pretty-prints a JSON error body when it is an object
// carrying an "error" field; anything else falls back to the raw text.
func jsonErrorMessage(body string) string {
	if !gjson.Valid(body) {
		return body
	}
	parsed := gjson.Parse(body)
	if !parsed.IsObject() || !parsed.Get("error").Exists() {
		return body
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return body
	}
	pretty, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return body
	}

	slog.Debug("parsed error object from response", "error", parsed.Get("error").String())
	return string(pretty)
}

var brTagPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// HTMLPreText extracts the first <pre> block from an HTML error page,
// converting <br> tags to newlines and decoding character entities. Reports
// false when the document has no <pre> block.
func HTMLPreText(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}

	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		return "", false
	}

	inner, err := pre.Html()
	if err != nil {
		return strings.TrimSpace(pre.Text()), true
	}

	text := brTagPattern.ReplaceAllString(inner, "\n")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(text), true
}

// truncate shortens s to at most n characters, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}

package requestlog

import (
	"encoding/json"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Content types with dedicated body parsing.
const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeText = "text/plain"
)

// Report is a captured inbound request.
type Report struct {
	// ID is a unique identifier for the report.
	ID string `json:"id"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	Method string `json:"method"`

	// URL is the request target as sent by the client, query included.
	URL string `json:"url"`

	// Pathname is the URL path without the query.
	Pathname string `json:"pathname"`

	// Query holds the query parameters. Single values are strings,
	// repeated keys are lists.
	Query map[string]any `json:"query"`

	// Headers uses the same single/list convention as Query.
	Headers map[string]any `json:"headers"`

	Body   Body   `json:"body"`
	Client Client `json:"client"`
}

// Body is the request body in raw and parsed form.
type Body struct {
	Raw         string `json:"raw"`
	ContentType string `json:"contentType,omitempty"`

	// Parsed is the decoded body: a JSON document, a form map or text.
	// It is nil when the body is empty.
	Parsed any `json:"parsed,omitempty"`

	// Truncated is set when the body exceeded the server's size limit.
	Truncated bool `json:"truncated,omitempty"`
}

// Client identifies the remote peer.
type Client struct {
	Address string `json:"address"`
	Port    int    `json:"port,omitempty"`
}

// NewReport builds a report for r. body is the already-read request body;
// r.Body is not touched.
func NewReport(r *http.Request, body []byte, now time.Time) *Report {
	contentType := r.Header.Get("Content-Type")
	addr, port := splitRemote(r.RemoteAddr)

	// net/http moves Host out of the header map.
	headers := flatten(r.Header)
	if r.Host != "" {
		headers["Host"] = r.Host
	}

	return &Report{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		Method:    r.Method,
		URL:       r.URL.RequestURI(),
		Pathname:  r.URL.Path,
		Query:     flatten(r.URL.Query()),
		Headers:   headers,
		Body: Body{
			Raw:         string(body),
			ContentType: contentType,
			Parsed:      ParseBody(contentType, body),
		},
		Client: Client{Address: addr, Port: port},
	}
}

// ParseBody decodes body according to its content type.
//
// Form bodies become a map using the single/list convention, text/plain
// stays text, and everything else is tried as JSON. When decoding fails
// the raw text is returned. An empty body yields nil.
func ParseBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch mediaType {
	case contentTypeForm:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return string(body)
		}
		return flatten(values)
	case contentTypeText:
		return string(body)
	default:
		if gjson.ValidBytes(body) {
			return json.RawMessage(pretty.Ugly(body))
		}
		return string(body)
	}
}

// MarshalIndent renders the report as indented JSON with a trailing
// newline. Parsed JSON bodies keep their key order.
func (r *Report) MarshalIndent() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

func flatten(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		switch len(v) {
		case 0:
			out[k] = ""
		case 1:
			out[k] = v[0]
		default:
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

func splitRemote(remote string) (string, int) {
	host, portStr, err := net.SplitHostPort(remote)
	if err != nil {
		return remote, 0
	}
	port, _ := strconv.Atoi(portStr)
	return host, port
}

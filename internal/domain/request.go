package domain

import (
	"net/url"
	"sort"
	"strings"
)

// Content types used by the Cognitive Services endpoints.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"
)

// Request describes a single HTTP call to a Cognitive Services endpoint.
// It is built fresh from UI state and never mutated after construction.
type Request struct {
	Method      string            `json:"method" yaml:"method"`
	ContentType string            `json:"content_type" yaml:"content_type"`
	Path        string            `json:"path" yaml:"path"`                       // Relative to the service endpoint, e.g. "/face/v1.0/persongroups"
	Query       map[string]string `json:"query,omitempty" yaml:"query,omitempty"` // Query string parameters
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`   // Serialized JSON, empty for no body
	Cost        string            `json:"cost" yaml:"cost"`                       // Billing annotation, e.g. "1 transaction"
	DocURL      string            `json:"doc_url" yaml:"doc_url"`                 // Reference documentation for the operation
}

// HasBody reports whether the request carries a payload.
func (r Request) HasBody() bool {
	return r.Body != ""
}

// EncodedQuery returns the query parameters encoded in sorted key order.
func (r Request) EncodedQuery() string {
	if len(r.Query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(r.Query))
	for k := range r.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(r.Query[k]))
	}
	return sb.String()
}

// URL joins the service endpoint with the request path and query.
// Trailing slashes on the endpoint are ignored.
func (r Request) URL(endpoint string) string {
	u := strings.TrimRight(endpoint, "/") + r.Path
	if q := r.EncodedQuery(); q != "" {
		u += "?" + q
	}
	return u
}

// Service infers the target API from the request path.
func (r Request) Service() ServiceKind {
	switch {
	case strings.HasPrefix(r.Path, "/face/"):
		return ServiceFace
	case strings.HasPrefix(r.Path, "/text/"):
		return ServiceText
	default:
		return ""
	}
}

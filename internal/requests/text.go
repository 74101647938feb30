package requests

import (
	"net/http"

	"github.com/shhac/cogview/internal/domain"
)

// APIVersion selects a Text Analytics API version.
type APIVersion string

const (
	VersionStable  APIVersion = "v2.1"
	VersionPreview APIVersion = "v3.0-preview.1"
)

// IsPreview reports whether the version exposes the preview-only operations.
func (v APIVersion) IsPreview() bool {
	return v == VersionPreview
}

// APIVersions lists the selectable versions, stable first.
func APIVersions() []APIVersion {
	return []APIVersion{VersionStable, VersionPreview}
}

const textCost = "1 transaction per document (per 1,000 characters)"

// Operation keys for Text Analytics requests.
const (
	OpSentiment  = "sentiment"
	OpKeyPhrases = "keyPhrases"
	OpEntities   = "entities"
	OpLanguages  = "languages"
	OpPII        = "pii"
	OpLinking    = "linking"
)

// TextOperation pairs a request descriptor with the key its result is stored under.
type TextOperation struct {
	Key     string
	Title   string
	Request domain.Request
}

type document struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type documentsBody struct {
	Documents []document `json:"documents"`
}

// Documents builds the single-document payload shared by all Text Analytics operations.
// The language is omitted when empty.
func Documents(text, language string) string {
	return encodeBody(documentsBody{
		Documents: []document{{ID: "1", Language: language, Text: text}},
	})
}

func textPath(v APIVersion, suffix string) string {
	return "/text/analytics/" + string(v) + suffix
}

func textDocURL(v APIVersion, op string) string {
	if v.IsPreview() {
		return "https://westus2.dev.cognitive.microsoft.com/docs/services/TextAnalytics-v3-0-Preview-1/operations/" + op
	}
	return "https://westus.dev.cognitive.microsoft.com/docs/services/TextAnalytics-v2-1/operations/" + op
}

func textRequest(v APIVersion, suffix, docOp, body string) domain.Request {
	req := domain.Request{
		Method:      http.MethodPost,
		ContentType: domain.ContentTypeJSON,
		Path:        textPath(v, suffix),
		Body:        body,
		Cost:        textCost,
		DocURL:      textDocURL(v, docOp),
	}
	if v.IsPreview() {
		req.Query = encodeQuery(struct {
			ShowStats bool `schema:"showStats"`
		}{})
	}
	return req
}

// Sentiment builds a sentiment analysis request.
func Sentiment(v APIVersion, text, language string) domain.Request {
	docOp := "56f30ceeeda5650db055a3c9"
	if v.IsPreview() {
		docOp = "Sentiment"
	}
	return textRequest(v, "/sentiment", docOp, Documents(text, language))
}

// KeyPhrases builds a key phrase extraction request.
func KeyPhrases(v APIVersion, text, language string) domain.Request {
	docOp := "56f30ceeeda5650db055a3c6"
	if v.IsPreview() {
		docOp = "KeyPhrases"
	}
	return textRequest(v, "/keyPhrases", docOp, Documents(text, language))
}

// Entities builds a named entity recognition request. The stable version uses the
// combined entities endpoint; the preview splits recognition from linking.
func Entities(v APIVersion, text, language string) domain.Request {
	if v.IsPreview() {
		return textRequest(v, "/entities/recognition/general", "EntitiesRecognitionGeneral", Documents(text, language))
	}
	return textRequest(v, "/entities", "5ac4251d5b4ccd1554da7634", Documents(text, language))
}

// DetectLanguage builds a language detection request. The document carries no language.
func DetectLanguage(v APIVersion, text string) domain.Request {
	docOp := "56f30ceeeda5650db055a3c7"
	if v.IsPreview() {
		docOp = "Languages"
	}
	return textRequest(v, "/languages", docOp, Documents(text, ""))
}

// PIIEntities builds a personally identifiable information recognition request.
// Only the preview version exposes this operation.
func PIIEntities(v APIVersion, text, language string) domain.Request {
	return textRequest(v, "/entities/recognition/pii", "EntitiesRecognitionPii", Documents(text, language))
}

// EntityLinking builds an entity linking request.
// Only the preview version exposes this operation.
func EntityLinking(v APIVersion, text, language string) domain.Request {
	return textRequest(v, "/entities/linking", "EntitiesLinking", Documents(text, language))
}

// TextAnalysisRequests returns every operation available for the version, in display order.
func TextAnalysisRequests(v APIVersion, text, language string) []TextOperation {
	ops := []TextOperation{
		{Key: OpSentiment, Title: "Sentiment", Request: Sentiment(v, text, language)},
		{Key: OpKeyPhrases, Title: "Key Phrases", Request: KeyPhrases(v, text, language)},
		{Key: OpEntities, Title: "Entities", Request: Entities(v, text, language)},
		{Key: OpLanguages, Title: "Language", Request: DetectLanguage(v, text)},
	}
	if v.IsPreview() {
		ops = append(ops,
			TextOperation{Key: OpPII, Title: "PII Entities", Request: PIIEntities(v, text, language)},
			TextOperation{Key: OpLinking, Title: "Entity Linking", Request: EntityLinking(v, text, language)},
		)
	}
	return ops
}

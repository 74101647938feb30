package requests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/domain"
)

const sampleText = "I had a wonderful trip to Seattle last week."

func keysOf(ops []TextOperation) []string {
	keys := make([]string, len(ops))
	for i, op := range ops {
		keys[i] = op.Key
	}
	return keys
}

func TestTextAnalysisRequests_VersionDifference(t *testing.T) {
	stable := TextAnalysisRequests(VersionStable, sampleText, "en")
	preview := TextAnalysisRequests(VersionPreview, sampleText, "en")

	assert.Equal(t, []string{OpSentiment, OpKeyPhrases, OpEntities, OpLanguages}, keysOf(stable))
	assert.Equal(t, []string{OpSentiment, OpKeyPhrases, OpEntities, OpLanguages, OpPII, OpLinking}, keysOf(preview))

	// The shared prefix only differs in the version segment.
	for i := range stable {
		assert.Equal(t, stable[i].Key, preview[i].Key)
		assert.Contains(t, stable[i].Request.Path, "/text/analytics/v2.1/")
		assert.Contains(t, preview[i].Request.Path, "/text/analytics/v3.0-preview.1/")
	}
}

func TestTextAnalysisRequests_Paths(t *testing.T) {
	tests := []struct {
		version APIVersion
		want    map[string]string
	}{
		{
			version: VersionStable,
			want: map[string]string{
				OpSentiment:  "/text/analytics/v2.1/sentiment",
				OpKeyPhrases: "/text/analytics/v2.1/keyPhrases",
				OpEntities:   "/text/analytics/v2.1/entities",
				OpLanguages:  "/text/analytics/v2.1/languages",
			},
		},
		{
			version: VersionPreview,
			want: map[string]string{
				OpSentiment:  "/text/analytics/v3.0-preview.1/sentiment",
				OpKeyPhrases: "/text/analytics/v3.0-preview.1/keyPhrases",
				OpEntities:   "/text/analytics/v3.0-preview.1/entities/recognition/general",
				OpLanguages:  "/text/analytics/v3.0-preview.1/languages",
				OpPII:        "/text/analytics/v3.0-preview.1/entities/recognition/pii",
				OpLinking:    "/text/analytics/v3.0-preview.1/entities/linking",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.version), func(t *testing.T) {
			got := make(map[string]string)
			for _, op := range TextAnalysisRequests(tt.version, sampleText, "en") {
				got[op.Key] = op.Request.Path
				assert.Equal(t, http.MethodPost, op.Request.Method)
				assert.Equal(t, domain.ServiceText, op.Request.Service())
				assert.NotEmpty(t, op.Request.DocURL)
				assert.NotEmpty(t, op.Request.Cost)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextAnalysisRequests_Query(t *testing.T) {
	for _, op := range TextAnalysisRequests(VersionStable, sampleText, "en") {
		assert.Nil(t, op.Request.Query, op.Key)
	}
	for _, op := range TextAnalysisRequests(VersionPreview, sampleText, "en") {
		assert.Equal(t, map[string]string{"showStats": "false"}, op.Request.Query, op.Key)
	}
}

func TestDocuments(t *testing.T) {
	var body struct {
		Documents []map[string]string `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(Documents(sampleText, "en")), &body))
	require.Len(t, body.Documents, 1)
	assert.Equal(t, map[string]string{"id": "1", "language": "en", "text": sampleText}, body.Documents[0])
}

func TestDetectLanguage_OmitsLanguage(t *testing.T) {
	req := DetectLanguage(VersionStable, sampleText)
	assert.JSONEq(t, `{"documents":[{"id":"1","text":"`+sampleText+`"}]}`, req.Body)
}

func TestAPIVersion_IsPreview(t *testing.T) {
	assert.False(t, VersionStable.IsPreview())
	assert.True(t, VersionPreview.IsPreview())
	assert.Equal(t, []APIVersion{VersionStable, VersionPreview}, APIVersions())
}

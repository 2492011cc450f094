package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAppendsTopicInstruction(t *testing.T) {
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, Model))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Generated draft."}]}}]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)

	text, err := client.Generate(context.Background(), "Why Go servers scale")
	require.NoError(t, err)
	assert.Equal(t, "Generated draft.", text)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	sent := gotBody.Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(sent, "Why Go servers scale"))
	assert.True(t, strings.HasSuffix(sent, "simple text format"))
}

func TestGenerateUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)

	_, err := client.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("test-key", srv.URL)

	_, err := client.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

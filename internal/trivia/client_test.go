package trivia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// rfc3986 encodes the way the provider does: %XX escapes, spaces as %20.
func rfc3986(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, 5*time.Second, zap.NewNop())
}

func TestClient_FetchQuestions_Success(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"response_code": 0,
			"results": [
				{
					"category": "Science%%20%%26%%20Nature",
					"type": "multiple",
					"difficulty": "hard",
					"question": %q,
					"correct_answer": %q,
					"incorrect_answers": [%q, %q, %q]
				}
			]
		}`,
			rfc3986("What is the atomic number of carbon?"),
			rfc3986("6"),
			rfc3986("8"), rfc3986("12"), rfc3986("14"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	questions, err := client.FetchQuestions(context.Background(), "science", 20)

	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, "20", gotQuery.Get("amount"))
	assert.Equal(t, "17", gotQuery.Get("category"))
	assert.Equal(t, "multiple", gotQuery.Get("type"))
	assert.Equal(t, "url3986", gotQuery.Get("encode"))

	q := questions[0]
	assert.Equal(t, "science", q.Category)
	assert.Equal(t, "What is the atomic number of carbon?", q.Text)
	assert.Equal(t, 3, q.Difficulty)
	require.Len(t, q.Options, 4)
	assert.Equal(t, "6", q.Options[q.CorrectIndex])
	assert.ElementsMatch(t, []string{"6", "8", "12", "14"}, q.Options)
}

func TestClient_FetchQuestions_ShuffleKeepsCorrectAnswer(t *testing.T) {
	const batchSize = 30

	var results []string
	for i := 0; i < batchSize; i++ {
		results = append(results, fmt.Sprintf(`{
			"category": "General%%20Knowledge",
			"type": "multiple",
			"difficulty": "medium",
			"question": "%s",
			"correct_answer": "%s",
			"incorrect_answers": ["%s", "%s", "%s"]
		}`,
			rfc3986(fmt.Sprintf("Question %d?", i)),
			rfc3986(fmt.Sprintf("Right answer %d", i)),
			rfc3986(fmt.Sprintf("Wrong A %d", i)),
			rfc3986(fmt.Sprintf("Wrong B %d", i)),
			rfc3986(fmt.Sprintf("Wrong C %d", i))))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response_code": 0, "results": [%s]}`, strings.Join(results, ","))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	questions, err := client.FetchQuestions(context.Background(), "general", batchSize)

	require.NoError(t, err)
	require.Len(t, questions, batchSize)

	for i, q := range questions {
		require.Len(t, q.Options, 4)
		require.GreaterOrEqual(t, q.CorrectIndex, 0)
		require.Less(t, q.CorrectIndex, len(q.Options))
		assert.Equal(t, fmt.Sprintf("Right answer %d", i), q.Options[q.CorrectIndex])
	}
}

func TestClient_FetchQuestions_UnknownCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for an unmapped category")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchQuestions(context.Background(), "sports", 10)

	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestClient_FetchQuestions_ResponseCodes(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantReason string
	}{
		{"no results", 1, "no-results"},
		{"invalid parameter", 2, "invalid-parameter"},
		{"token not found", 3, "token-not-found"},
		{"token empty", 4, "token-empty"},
		{"rate limited", 5, "rate-limited"},
		{"unrecognized code", 99, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"response_code": %d, "results": []}`, tt.code)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.FetchQuestions(context.Background(), "general", 10)

			var upstreamErr *UpstreamError
			require.ErrorAs(t, err, &upstreamErr)
			assert.Equal(t, tt.wantReason, upstreamErr.Reason)
		})
	}
}

func TestClient_FetchQuestions_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response_code": 0, "results": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchQuestions(context.Background(), "general", 10)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "no-results", upstreamErr.Reason)
}

func TestClient_FetchQuestions_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchQuestions(context.Background(), "general", 10)

	require.Error(t, err)
	var upstreamErr *UpstreamError
	assert.False(t, errors.As(err, &upstreamErr), "transport failures are not UpstreamError")
}

func TestClient_FetchQuestions_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response_code": 0, "results"`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchQuestions(context.Background(), "general", 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, 1, parseDifficulty("easy"))
	assert.Equal(t, 2, parseDifficulty("medium"))
	assert.Equal(t, 3, parseDifficulty("hard"))
	assert.Equal(t, 2, parseDifficulty("nightmare"))
	assert.Equal(t, 2, parseDifficulty(""))
}

func TestCategories_SortedAndComplete(t *testing.T) {
	got := Categories()
	assert.Equal(t, []string{"film", "general", "geography", "history", "music", "science"}, got)
}

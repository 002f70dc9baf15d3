package mem0

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_RequiresAPIKey(t *testing.T) {
	_, err := NewStore(Config{})
	require.Error(t, err)
}

func TestAdd(t *testing.T) {
	var gotReq addRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memories/", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "m0-key", BaseURL: server.URL})
	require.NoError(t, err)

	require.NoError(t, store.Add(context.Background(), "client-1", "prefers blackwork"))

	assert.Equal(t, "Token m0-key", gotAuth)
	assert.Equal(t, "client-1", gotReq.UserID)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "prefers blackwork", gotReq.Messages[0].Content)
}

func TestSearch_ArrayResponse(t *testing.T) {
	var gotReq searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memories/search/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode([]map[string]any{
			{"memory": "prefers blackwork"},
			{"memory": "allergic to latex"},
		})
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "m0-key", BaseURL: server.URL})
	require.NoError(t, err)

	memories, err := store.Search(context.Background(), "client-1", "preferences", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"prefers blackwork", "allergic to latex"}, memories)
	assert.Equal(t, "client-1", gotReq.UserID)
	assert.Equal(t, "preferences", gotReq.Query)
	assert.Equal(t, 10, gotReq.Limit)
}

func TestSearch_WrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"memory": "budget $300"}},
		})
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "m0-key", BaseURL: server.URL})
	require.NoError(t, err)

	memories, err := store.Search(context.Background(), "client-1", "budget", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget $300"}, memories)
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid token"}`))
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "m0-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = store.Search(context.Background(), "client-1", "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

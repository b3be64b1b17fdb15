package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsExpoBatch(t *testing.T) {
	var received []expoMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"data":[{"status":"ok"},{"status":"ok"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.Send(context.Background(), Message{
		Tokens: []string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"},
		Title:  "Yeni duyuru",
		Body:   "Eylül buluşması yayında.",
		Data:   map[string]string{"screen": "announcements"},
	})
	require.NoError(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, "ExponentPushToken[aaa]", received[0].To)
	assert.Equal(t, "Yeni duyuru", received[0].Title)
	assert.Equal(t, "default", received[0].Sound)
	assert.Equal(t, "announcements", received[0].Data["screen"])
}

func TestSendBatchesOverExpoLimit(t *testing.T) {
	var batches [][]expoMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []expoMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		batches = append(batches, batch)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	tokens := make([]string, 150)
	for i := range tokens {
		tokens[i] = "ExponentPushToken[test]"
	}

	client := NewClient(srv.URL, nil)
	require.NoError(t, client.Send(context.Background(), Message{Tokens: tokens, Body: "x"}))

	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 100)
	assert.Len(t, batches[1], 50)
}

func TestSendSurfacesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.Send(context.Background(), Message{Tokens: []string{"t"}, Body: "x"})
	assert.Error(t, err)
}

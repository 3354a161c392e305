package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err, "photo must arrive as multipart field \"file\"")
		defer file.Close()
		assert.Equal(t, "cup.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"empty","probability":0.92}`))
	}))
	defer server.Close()

	client := NewInferenceClient(server.URL, 5*time.Second)
	resp, err := client.Predict(context.Background(), "cup.jpg", []byte("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "empty", resp.Result)
	assert.InDelta(t, 0.92, resp.Probability, 1e-9)
}

func TestDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect", r.URL.Path)

		_, header, err := r.FormFile("image")
		require.NoError(t, err, "photo must arrive as multipart field \"image\"")
		assert.Equal(t, "bin.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detected":true}`))
	}))
	defer server.Close()

	client := NewInferenceClient(server.URL, 5*time.Second)
	resp, err := client.Detect(context.Background(), "bin.jpg", []byte("jpeg-bytes"))

	require.NoError(t, err)
	assert.True(t, resp.Detected)
}

func TestPredict_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewInferenceClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), "cup.jpg", []byte("jpeg-bytes"))
	assert.Error(t, err)
}

func TestDetect_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewInferenceClient(server.URL, 5*time.Second)
	_, err := client.Detect(context.Background(), "bin.jpg", []byte("jpeg-bytes"))
	assert.Error(t, err)
}

func TestPredict_Unreachable(t *testing.T) {
	client := NewInferenceClient("http://127.0.0.1:1", time.Second)
	_, err := client.Predict(context.Background(), "cup.jpg", []byte("jpeg-bytes"))
	assert.Error(t, err)
}

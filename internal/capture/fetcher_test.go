package capture

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// pngHeader is enough for content-type sniffing; the fetcher does not decode.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestFetchReturnsImageBytes(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher(5*1024*1024, zerolog.New(io.Discard))
	data, err := f.Fetch(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatalf("unexpected body: %v", data)
	}
	if !strings.HasPrefix(gotUserAgent, "Mozilla/5.0") {
		t.Fatalf("expected browser-like user agent, got %q", gotUserAgent)
	}
}

func TestFetchRejectsNonImageContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher(5*1024*1024, zerolog.New(io.Discard))
	_, err := f.Fetch(context.Background(), srv.URL+"/photo.png")
	if err == nil || !strings.Contains(err.Error(), "não retorna uma imagem") {
		t.Fatalf("expected content-type error, got %v", err)
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher(5*1024*1024, zerolog.New(io.Discard))
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.png")
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher(1024, zerolog.New(io.Discard))
	_, err := f.Fetch(context.Background(), srv.URL+"/big.jpg")
	if err == nil || !strings.Contains(err.Error(), "muito grande") {
		t.Fatalf("expected size error, got %v", err)
	}
}

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("Expected user agent 'test-agent/1.0', got '%s'", got)
		}
		if got := r.Header.Get("Accept"); !strings.Contains(got, "application/rss+xml") {
			t.Errorf("Expected rss accept header, got '%s'", got)
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Last-Modified", "Mon, 03 Jul 2023 12:00:00 GMT")
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	client := NewClient("test-agent/1.0", 5*time.Second, 0)
	result, err := client.Get(context.Background(), server.URL, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", result.Status)
	}
	if string(result.Body) != "<rss/>" {
		t.Errorf("Expected body, got %q", result.Body)
	}
	if result.ETag != `"v1"` {
		t.Errorf("Expected etag, got '%s'", result.ETag)
	}
	if result.LastModified == "" {
		t.Error("Expected last modified header captured")
	}
	if result.NotModified {
		t.Error("Expected NotModified false for 200")
	}
}

func TestGetConditional(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("If-None-Match"); got != `"v1"` {
			t.Errorf("Expected If-None-Match sent, got '%s'", got)
		}
		if got := r.Header.Get("If-Modified-Since"); got != "Mon, 03 Jul 2023 12:00:00 GMT" {
			t.Errorf("Expected If-Modified-Since sent, got '%s'", got)
		}
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewClient("test-agent/1.0", 5*time.Second, 0)
	result, err := client.Get(context.Background(), server.URL, `"v1"`, "Mon, 03 Jul 2023 12:00:00 GMT")
	if err != nil {
		t.Fatal(err)
	}
	if !result.NotModified {
		t.Error("Expected NotModified for 304")
	}
	if len(result.Body) != 0 {
		t.Errorf("Expected no body for 304, got %d bytes", len(result.Body))
	}
}

func TestGetServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-agent/1.0", 5*time.Second, 0)
	if _, err := client.Get(context.Background(), server.URL, "", ""); err == nil {
		t.Error("Expected error for HTTP 500")
	}
}

func TestGetBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	client := NewClient("test-agent/1.0", 5*time.Second, 1024)
	if _, err := client.Get(context.Background(), server.URL, "", ""); err == nil {
		t.Error("Expected error for oversized body")
	}
}

package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGetHtmlBytes(t *testing.T) {
	var (
		mu    sync.Mutex
		gotUA string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUA = r.Header.Get("User-Agent")
		mu.Unlock()
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<html><body><p>hello</p></body></html>"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(Options{UserAgent: "veritas-test", MaxBytes: 10})

	tests := []struct {
		name       string
		path       string
		wantLen    int
		wantStatus bool
	}{
		{"ok truncated to max bytes", "/ok", 10, false},
		{"large body truncated", "/big", 10, false},
		{"not found", "/missing", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := f.GetHtmlBytes(context.Background(), srv.URL+tt.path)
			if tt.wantStatus {
				if !errors.Is(err, ErrUnexpectedStatus) {
					t.Fatalf("error = %v, want ErrUnexpectedStatus", err)
				}
				var se *StatusError
				if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
					t.Errorf("error = %v, want StatusError 404", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetHtmlBytes() error = %v", err)
			}
			if len(body) != tt.wantLen {
				t.Errorf("len(body) = %d, want %d", len(body), tt.wantLen)
			}
		})
	}

	mu.Lock()
	defer mu.Unlock()
	if gotUA != "veritas-test" {
		t.Errorf("User-Agent = %q, want veritas-test", gotUA)
	}
}

func TestGetHtmlBytesHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := NewFetcher(Options{}).GetHtmlBytes(ctx, srv.URL); err == nil {
		t.Error("GetHtmlBytes() error = nil, want context deadline error")
	}
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(Options{})
	if f.userAgent != DefaultUserAgent || f.maxBytes != DefaultMaxBytes || f.client.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", f)
	}
}

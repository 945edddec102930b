package loader

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ottervanger/lumo/pyramid"
)

func tileServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, img)
	}))
}

func TestHTTPLoaderURLTemplating(t *testing.T) {
	l := NewHTTPLoader("https://example.test/{z}/{x}/{y}.png", "test-agent")
	got := l.url(pyramid.NewTileCoord(5, 3, 9))
	want := "https://example.test/5/3/9.png"
	if got != want {
		t.Errorf("url() = %q, want %q", got, want)
	}
}

func TestHTTPLoaderLoadSuccess(t *testing.T) {
	srv := tileServer(t)
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/{z}/{x}/{y}.png", "test-agent")

	var wg sync.WaitGroup
	wg.Add(1)
	var gotImg any
	var gotErr error
	l.Load(context.Background(), pyramid.NewTileCoord(1, 0, 0), func(payload any, err error) {
		gotImg, gotErr = payload, err
		wg.Done()
	})
	wg.Wait()

	if gotErr != nil {
		t.Fatalf("Load() err = %v", gotErr)
	}
	if _, ok := gotImg.(image.Image); !ok {
		t.Errorf("Load() payload = %T, want image.Image", gotImg)
	}
}

func TestHTTPLoaderLoadFailure(t *testing.T) {
	srv := tileServer(t)
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/fail.png", "test-agent")

	var wg sync.WaitGroup
	wg.Add(1)
	var gotErr error
	l.Load(context.Background(), pyramid.NewTileCoord(1, 0, 0), func(payload any, err error) {
		gotErr = err
		wg.Done()
	})
	wg.Wait()

	if gotErr == nil {
		t.Fatalf("expected an error for a 404 response")
	}
}

func TestFetchBatchBoundedConcurrency(t *testing.T) {
	srv := tileServer(t)
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/{z}/{x}/{y}.png", "test-agent")
	l.MaxConcurrency = 2

	coords := []pyramid.TileCoord{
		pyramid.NewTileCoord(3, 0, 0),
		pyramid.NewTileCoord(3, 1, 0),
		pyramid.NewTileCoord(3, 0, 1),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := l.FetchBatch(ctx, coords)
	if err != nil {
		t.Fatalf("FetchBatch() err = %v", err)
	}
	if len(results) != len(coords) {
		t.Fatalf("FetchBatch() returned %d results, want %d", len(results), len(coords))
	}
	for _, c := range coords {
		if results[c] == nil {
			t.Errorf("missing result for %v", c)
		}
	}
}

func TestFetchBatchPropagatesError(t *testing.T) {
	srv := tileServer(t)
	defer srv.Close()

	l := NewHTTPLoader(srv.URL+"/fail.png", "test-agent")
	_, err := l.FetchBatch(context.Background(), []pyramid.TileCoord{pyramid.NewTileCoord(1, 0, 0)})
	if err == nil {
		t.Fatalf("expected FetchBatch to propagate a fetch error")
	}
}

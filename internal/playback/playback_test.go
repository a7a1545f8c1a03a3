package playback

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func newTestPlayer(t *testing.T) *ExecPlayer {
	t.Helper()
	p := NewExecPlayer("true", zerolog.Nop())
	p.cacheDir = filepath.Join(t.TempDir(), "tts")
	return p
}

func TestExecPlayerFetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, "mp3-bytes")
	}))
	defer srv.Close()

	p := newTestPlayer(t)
	url := srv.URL + "/practice/tts?lang=fr&text=bonjour"

	if err := p.Play(context.Background(), url); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := p.Play(context.Background(), url); err != nil {
		t.Fatalf("second Play: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("stream fetched %d times, want 1 (cached)", got)
	}

	entries, err := os.ReadDir(p.cacheDir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("cache holds %d files, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(p.cacheDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading cached clip: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("cached clip = %q", data)
	}
}

func TestExecPlayerStreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such language", http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestPlayer(t)
	if err := p.Play(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 stream")
	}
}

func TestExecPlayerNoCommandIsNoop(t *testing.T) {
	p := &ExecPlayer{log: zerolog.Nop()}
	if err := p.Play(context.Background(), "http://unused"); err != nil {
		t.Fatalf("Play with no player = %v, want nil", err)
	}
}

func TestNopPlayer(t *testing.T) {
	if err := (NopPlayer{}).Play(context.Background(), "anything"); err != nil {
		t.Fatalf("NopPlayer.Play = %v", err)
	}
}

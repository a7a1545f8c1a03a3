// Package playback speaks card text through the backend's TTS stream.
// Clips are fetched to a small on-disk cache and handed to a local
// command-line player. Playback is best effort throughout: a missing
// player or a dead stream means silence, never a failed session.
package playback

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

const fetchTimeout = 15 * time.Second

// Player speaks one TTS stream URL.
type Player interface {
	Play(ctx context.Context, url string) error
}

// NopPlayer ignores every request. Used in tests and headless runs.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context, string) error { return nil }

// ExecPlayer fetches the stream to a cache file and runs a local
// player command on it.
type ExecPlayer struct {
	command  string
	cacheDir string
	http     *http.Client
	log      zerolog.Logger
}

// NewExecPlayer builds a player around the given command. An empty
// command picks the first player found on PATH; if none is found the
// player is a no-op.
func NewExecPlayer(command string, log zerolog.Logger) *ExecPlayer {
	if command == "" {
		command = findPlayer()
	}
	cacheDir := filepath.Join(os.TempDir(), "teachme-tts")
	return &ExecPlayer{
		command:  command,
		cacheDir: cacheDir,
		http:     &http.Client{Timeout: fetchTimeout},
		log:      log,
	}
}

// candidate players, in preference order per platform.
func findPlayer() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"afplay", "mpg123", "ffplay"}
	case "windows":
		candidates = []string{"ffplay", "mpg123"}
	default:
		candidates = []string{"mpg123", "mpv", "ffplay", "cvlc"}
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c
		}
	}
	return ""
}

func (p *ExecPlayer) Play(ctx context.Context, url string) error {
	if p.command == "" {
		p.log.Debug().Msg("no audio player found, skipping tts")
		return nil
	}

	path, err := p.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetching tts stream: %w", err)
	}

	args := []string{path}
	if p.command == "ffplay" {
		args = []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	}
	cmd := exec.CommandContext(ctx, p.command, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", p.command, err)
	}
	return nil
}

// fetch downloads the stream to the cache, keyed by URL, and returns
// the file path. Repeated plays of the same card reuse the file.
func (p *ExecPlayer) fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	sum := sha1.Sum([]byte(url))
	path := filepath.Join(p.cacheDir, hex.EncodeToString(sum[:])+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tts stream returned %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(p.cacheDir, "fetch-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

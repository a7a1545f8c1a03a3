package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// evaluateTimeout is longer than the default because the backend runs
// speech-to-text on the uploaded clip before answering.
const evaluateTimeout = 90 * time.Second

// Client talks to the tutor backend over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for round-trip logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a gateway bound to baseURL, e.g. "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.getJSON(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []Course{}
	}
	return courses, nil
}

func (c *Client) PracticeCards(ctx context.Context, iso string) ([]PracticeCard, error) {
	var cards []PracticeCard
	if err := c.getJSON(ctx, "/practice/"+url.PathEscape(iso), &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []PracticeCard{}
	}
	return cards, nil
}

func (c *Client) CourseStats(ctx context.Context, iso string) (*CourseStats, error) {
	var stats CourseStats
	if err := c.getJSON(ctx, "/course/"+url.PathEscape(iso)+"/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) SubmitReview(ctx context.Context, cardID int, grade Grade) error {
	if !grade.Valid() {
		return unknown(fmt.Sprintf("grade out of range: %d", int(grade)), nil)
	}
	path := fmt.Sprintf("/review/%d", cardID)
	body := strings.NewReader(fmt.Sprintf("%d", int(grade)))
	return c.postDiscard(ctx, path, "application/json", body)
}

func (c *Client) ResetCourse(ctx context.Context, iso string) error {
	return c.postDiscard(ctx, "/course/"+url.PathEscape(iso)+"/reset", "", nil)
}

func (c *Client) AddCard(ctx context.Context, iso string, card NewCard) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return unknown("encode card", err)
	}
	path := "/course/" + url.PathEscape(iso) + "/add_card"
	return c.postDiscard(ctx, path, "application/json", bytes.NewReader(payload))
}

func (c *Client) SeedLanguage(ctx context.Context, iso string) error {
	payload, err := json.Marshal(map[string]string{"iso": iso})
	if err != nil {
		return unknown("encode seed request", err)
	}
	return c.postDiscard(ctx, "/admin/seed_language", "application/json", bytes.NewReader(payload))
}

func (c *Client) EvaluatePronunciation(ctx context.Context, expected string, clip AudioClip) (*EvaluationResult, error) {
	if len(clip.Data) == 0 {
		return nil, evaluationFailed("empty audio clip", nil)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("expected", expected); err != nil {
		return nil, unknown("write expected field", err)
	}
	part, err := w.CreateFormFile("file", clip.Filename())
	if err != nil {
		return nil, unknown("create form file", err)
	}
	if _, err := part.Write(clip.Data); err != nil {
		return nil, unknown("write clip data", err)
	}
	if err := w.Close(); err != nil {
		return nil, unknown("finalize multipart body", err)
	}

	ctx, cancel := context.WithTimeout(ctx, evaluateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/practice/evaluate", &buf)
	if err != nil {
		return nil, unknown("build evaluate request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logRoundTrip(req, 0, start, err)
		return nil, unreachable("upload pronunciation clip", err)
	}
	defer resp.Body.Close()
	c.logRoundTrip(req, resp.StatusCode, start, nil)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := fmt.Sprintf("evaluate returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, unreachable(msg, nil)
		}
		return nil, evaluationFailed(msg, nil)
	}

	var result EvaluationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, evaluationFailed("decode evaluation response", err)
	}
	return &result, nil
}

func (c *Client) TTSURL(text, lang string) string {
	q := url.Values{}
	q.Set("text", text)
	q.Set("lang", lang)
	return c.baseURL + "/practice/tts?" + q.Encode()
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return unknown("build request for "+path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logRoundTrip(req, 0, start, err)
		return unreachable("GET "+path, err)
	}
	defer resp.Body.Close()
	c.logRoundTrip(req, resp.StatusCode, start, nil)

	if err := c.checkStatus(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return unknown("decode response from "+path, err)
	}
	return nil
}

// postDiscard performs a POST whose response body carries nothing the
// client needs beyond the status code.
func (c *Client) postDiscard(ctx context.Context, path, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return unknown("build request for "+path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logRoundTrip(req, 0, start, err)
		return unreachable("POST "+path, err)
	}
	defer resp.Body.Close()
	c.logRoundTrip(req, resp.StatusCode, start, nil)

	return c.checkStatus(resp, path)
}

func (c *Client) checkStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return notFound(path + " not found")
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return unreachable(fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return unknown(fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
}

func (c *Client) logRoundTrip(req *http.Request, status int, start time.Time, err error) {
	ev := c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("elapsed", time.Since(start))
	if err != nil {
		ev = ev.Err(err)
	} else {
		ev = ev.Int("status", status)
	}
	ev.Msg("backend request")
}

package tutor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/courses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"iso":"fr","language":"French","card_count":12},{"iso":"pt","language":"Portuguese","card_count":0}]`)
	}))
	defer srv.Close()

	courses, err := NewClient(srv.URL).ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, Course{ISO: "fr", Language: "French", CardCount: 12}, courses[0])
	assert.Equal(t, 0, courses[1].CardCount)
}

func TestListCoursesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	courses, err := NewClient(srv.URL).ListCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestPracticeCardsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"course not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PracticeCards(context.Background(), "xx")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestPracticeCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/practice/fr", r.URL.Path)
		io.WriteString(w, `[{"id":7,"front":"hello","back":"bonjour","hint":"greeting"}]`)
	}))
	defer srv.Close()

	cards, err := NewClient(srv.URL).PracticeCards(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 7, cards[0].ID)
	assert.Equal(t, "greeting", cards[0].Hint)
}

func TestCourseStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/fr/stats", r.URL.Path)
		io.WriteString(w, `{"total_cards":40,"mastered":5,"due_today":9}`)
	}))
	defer srv.Close()

	stats, err := NewClient(srv.URL).CourseStats(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, &CourseStats{TotalCards: 40, Mastered: 5, DueToday: 9}, stats)
}

func TestSubmitReviewBody(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).SubmitReview(context.Background(), 42, GradeGood)
	require.NoError(t, err)
	assert.Equal(t, "/review/42", gotPath)
	assert.Equal(t, "2", gotBody)
}

func TestSubmitReviewRejectsInvalidGrade(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	err := NewClient(srv.URL).SubmitReview(context.Background(), 1, Grade(9))
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestResetCourse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).ResetCourse(context.Background(), "fr"))
	assert.Equal(t, "/course/fr/reset", gotPath)
}

func TestAddCard(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/fr/add_card", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	card := NewCard{Front: "thank you", Back: "merci", Hint: "politeness"}
	require.NoError(t, NewClient(srv.URL).AddCard(context.Background(), "fr", card))
	assert.JSONEq(t, `{"front":"thank you","back":"merci","hint":"politeness"}`, gotBody)
}

func TestSeedLanguage(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/seed_language", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).SeedLanguage(context.Background(), "de"))
	assert.JSONEq(t, `{"iso":"de"}`, gotBody)
}

func TestEvaluatePronunciation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "bonjour", r.FormValue("expected"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clip.flac", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte{1, 2, 3}, data)

		io.WriteString(w, `{"similarity":83.5,"grade":"good","feedback":"Close!","transcript":"bonjour"}`)
	}))
	defer srv.Close()

	clip := AudioClip{Data: []byte{1, 2, 3}, ContentType: "audio/flac"}
	result, err := NewClient(srv.URL).EvaluatePronunciation(context.Background(), "bonjour", clip)
	require.NoError(t, err)
	assert.InDelta(t, 83.5, result.Similarity, 0.001)
	assert.Equal(t, "good", result.Grade)
	assert.Equal(t, "bonjour", result.Transcript)
}

func TestEvaluatePronunciationEmptyClip(t *testing.T) {
	_, err := NewClient("http://unused").EvaluatePronunciation(context.Background(), "x", AudioClip{})
	require.Error(t, err)
	assert.Equal(t, KindEvaluationFailed, KindOf(err))
}

func TestEvaluatePronunciationBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"could not understand audio"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	clip := AudioClip{Data: []byte{1}, ContentType: "audio/wav"}
	_, err := NewClient(srv.URL).EvaluatePronunciation(context.Background(), "x", clip)
	require.Error(t, err)
	assert.Equal(t, KindEvaluationFailed, KindOf(err))
}

func TestServerErrorsAreUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListCourses(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestConnectionRefusedIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).ListCourses(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindUnreachable, KindOf(err))
}

func TestTTSURL(t *testing.T) {
	c := NewClient("http://localhost:8000/")
	url := c.TTSURL("où est la gare ?", "fr")
	assert.Equal(t, "http://localhost:8000/practice/tts?lang=fr&text=o%C3%B9+est+la+gare+%3F", url)
}

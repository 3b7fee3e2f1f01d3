package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yetria/yetria/internal/i18n"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL:    srv.URL + "/api/v1/",
		Logger:     zaptest.NewLogger(t),
		Translator: i18n.MustNew(i18n.English),
		Now:        func() time.Time { return time.UnixMilli(1700000000000) },
	})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, in := range []string{"", "   ", "ftp://example.com", "not a url", "http://"} {
		_, err := New(Options{BaseURL: in})
		assert.Error(t, err, "base %q", in)
	}
}

func TestLoginSendsCredentialsAndDecodesToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("_t"), "POST must not carry cache buster")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, LoginRequest{Email: "ayse@example.com", Password: "secret1"}, body)
		writeJSON(w, http.StatusOK, Token{AccessToken: "tok-1", TokenType: "bearer"})
	}))

	tok, err := c.Login(context.Background(), "ayse@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.AccessToken)
}

func TestCredentialAttachedUntilCleared(t *testing.T) {
	var got []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, User{ID: 7, Name: "Ayşe", Email: "ayse@example.com"})
	}))
	ctx := context.Background()

	c.SetCredential("abc")
	assert.True(t, c.HasCredential())
	u, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, u.ID)

	c.SetCredential("")
	assert.False(t, c.HasCredential())
	_, err = c.Me(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer abc", ""}, got)
}

func TestGetAddsCacheBuster(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1700000000000", r.URL.Query().Get("_t"))
		writeJSON(w, http.StatusOK, Progress{TotalResponses: 8, CurrentStage: 3, CompletedStages: []int{1, 2}})
	}))

	p, err := c.Progress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Progress{TotalResponses: 8, CurrentStage: 3, CompletedStages: []int{1, 2}}, p)
}

func TestScenariosValidatesPayload(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/scenarios", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("stage"))
			io.WriteString(w, `[{"id":5,"text":"A colleague is upset.","competency_name":"Empati",
				"options":[{"letter":"A","text":"Listen"},{"letter":"B","text":"Ignore"}]}]`)
		}))
		got, err := c.Scenarios(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].ID)
		assert.Equal(t, "Empati", got[0].CompetencyName)
		assert.True(t, got[0].HasOption("B"))
		assert.False(t, got[0].HasOption("C"))
	})

	t.Run("missing options", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[{"id":5,"text":"x","competency_name":"Empati"}]`)
		}))
		_, err := c.Scenarios(context.Background(), 1)
		require.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("empty stage", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `[]`)
		}))
		got, err := c.Scenarios(context.Background(), 4)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{
			name:    "string detail wins",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"Email adresi veya şifre hatalı"}`,
			kind:    KindUnauthenticated,
			message: "Email adresi veya şifre hatalı",
		},
		{
			name:    "validation list detail",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`,
			kind:    KindClient,
			message: "value is not a valid email address",
		},
		{
			name:    "401 without detail",
			status:  http.StatusUnauthorized,
			body:    `{}`,
			kind:    KindUnauthenticated,
			message: "Email or password is incorrect.",
		},
		{
			name:    "409 without detail",
			status:  http.StatusConflict,
			body:    ``,
			kind:    KindClient,
			message: "This record already exists.",
		},
		{
			name:    "400 without detail",
			status:  http.StatusBadRequest,
			body:    `not json`,
			kind:    KindClient,
			message: "The request could not be processed.",
		},
		{
			name:    "other 4xx",
			status:  http.StatusTeapot,
			body:    `{}`,
			kind:    KindClient,
			message: "Something went wrong with your request.",
		},
		{
			name:    "server error ignores detail",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"Error retrieving progress: boom"}`,
			kind:    KindServer,
			message: "The server ran into a problem. Please try again later.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			_, err := c.Progress(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "/responses/progress", apiErr.Path)
			assert.Equal(t, time.UnixMilli(1700000000000), apiErr.Timestamp)
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, 0, StatusOf(err))
	assert.Contains(t, UserMessage(err, i18n.MustNew(i18n.English)), "internet connection")
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Progress{})
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Progress(ctx)
	require.Error(t, err)
	assert.Equal(t, KindCanceled, KindOf(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_responses":"eight"}`)
	}))
	_, err := c.Progress(context.Background())
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestSubmitResponsesDecodesPrediction(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in []Response
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []Response{{ScenarioID: 1, OptionLetter: "A"}, {ScenarioID: 2, OptionLetter: "C"}}, in)
		io.WriteString(w, `{
			"uyum_skorlari":[{"meslek":"Doktor","uyum":87.5},{"meslek":"Mühendis","uyum":61.0}],
			"kazanan_meslek":"Doktor",
			"yetkinlik_karsilastirmasi":[{"yetkinlik":"Empati","kullanici_skoru":4.5,"grup_ortalamasi":4.1,"fark":0.4}]
		}`)
	}))

	res, err := c.SubmitResponses(context.Background(), []Response{
		{ScenarioID: 1, OptionLetter: "A"},
		{ScenarioID: 2, OptionLetter: "C"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Doktor", res.WinningOccupation)
	require.Len(t, res.Compatibility, 2)
	assert.InDelta(t, 87.5, res.Compatibility[0].Score, 1e-9)
	require.Len(t, res.Comparisons, 1)
	assert.InDelta(t, 0.4, res.Comparisons[0].Difference, 1e-9)
}

func TestRecommendCoursesDefaultsLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in CourseRecommendationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, DefaultCourseLimit, in.Limit)
		assert.Equal(t, []string{"Empati", "Stres Yönetimi"}, in.Keywords)
		writeJSON(w, http.StatusOK, []Course{{ID: 3, Title: "Active listening", CourseURL: "https://example.com/c/3"}})
	}))

	got, err := c.RecommendCourses(context.Background(), []string{" Empati ", "", "Stres Yönetimi"}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Active listening", got[0].Title)
}

func TestMentorEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/mentors/recommend", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Yazılım Mühendisi", r.URL.Query().Get("occupation_title"))
		writeJSON(w, http.StatusOK, []Mentor{{ID: 11, Username: "Deniz", Company: "Acme"}})
	})
	mux.HandleFunc("POST /api/v1/mentorship/requests", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, MentorshipRequest{ID: 99, MentorProfileID: in["mentorprofileid"], StatusID: 1})
	})
	mux.HandleFunc("GET /api/v1/mentorship/requests", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"mentorshiprequestid":99,"userid":7,"mentorprofileid":11,"statusid":1,
			"createdat":"2025-05-01T10:00:00","mentor_name":"Deniz","status_name":"Talep Gönderildi"}]`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	mentors, err := c.RecommendMentors(ctx, "Yazılım Mühendisi")
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Deniz", mentors[0].DisplayName())

	req, err := c.CreateMentorshipRequest(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, req.MentorProfileID)

	list, err := c.MentorshipRequests(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 99, list[0].ID)
	assert.Equal(t, "Talep Gönderildi", list[0].StatusName)
}

func TestAssessmentResultNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"detail": "Assessment result not found. Please complete the assessment first.",
		})
	}))
	_, err := c.AssessmentResult(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindClient, KindOf(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestLogoutUsesExplicitToken(t *testing.T) {
	var auth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		auth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
	}))

	require.NoError(t, c.Logout(context.Background(), "old-token"))
	assert.Equal(t, "Bearer old-token", auth)
	assert.False(t, c.HasCredential())
}

func TestCourseCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Course{{ID: 1, Title: "Excel"}, {ID: 2, Title: "Empathy at work"}})
	})
	mux.HandleFunc("GET /api/v1/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "2" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Course not found"})
			return
		}
		writeJSON(w, http.StatusOK, Course{ID: 2, Title: "Empathy at work", DurationText: "3h"})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	all, err := c.Courses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := c.Course(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "3h", one.DurationText)

	_, err = c.Course(ctx, 5)
	require.Error(t, err)
	assert.Equal(t, KindClient, KindOf(err))
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Course not found", apiErr.Detail)
}

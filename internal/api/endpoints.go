package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultCourseLimit is the number of course recommendations requested
// when the caller passes a non-positive limit.
const DefaultCourseLimit = 7

// Register creates an account and returns its credential.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (Token, error) {
	var tok Token
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &tok)
	return tok, err
}

// Login exchanges email and password for a credential.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	var tok Token
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &tok)
	return tok, err
}

// Logout notifies the backend that a credential is being dropped. A
// non-empty token is sent instead of the current credential, so the call
// can run after the client has already been cleared.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token != "" {
		ctx = WithCredential(ctx, token)
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me returns the user that owns the current credential.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &u)
	return u, err
}

// Scenarios returns the scenarios of one stage. The payload is validated
// against a schema before it is decoded.
func (c *Client) Scenarios(ctx context.Context, stage int) ([]Scenario, error) {
	const path = "/scenarios"
	q := url.Values{}
	q.Set("stage", strconv.Itoa(stage))
	raw, err := c.send(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	if err := validateScenarios(raw); err != nil {
		return nil, c.decodeError(http.MethodGet, path, err)
	}
	var out []Scenario
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, c.decodeError(http.MethodGet, path, err)
	}
	return out, nil
}

// SubmitResponses posts one stage's answers and returns the prediction
// computed from them.
func (c *Client) SubmitResponses(ctx context.Context, responses []Response) (PredictionResult, error) {
	var res PredictionResult
	if responses == nil {
		responses = []Response{}
	}
	err := c.do(ctx, http.MethodPost, "/responses", nil, responses, &res)
	return res, err
}

// Progress returns the server's view of assessment progress.
func (c *Client) Progress(ctx context.Context) (Progress, error) {
	var p Progress
	err := c.do(ctx, http.MethodGet, "/responses/progress", nil, nil, &p)
	return p, err
}

// ComputeResult recomputes the prediction from all saved responses.
func (c *Client) ComputeResult(ctx context.Context) (PredictionResult, error) {
	var res PredictionResult
	err := c.do(ctx, http.MethodGet, "/responses/result", nil, nil, &res)
	return res, err
}

// AssessmentStatus reports whether a final result exists.
func (c *Client) AssessmentStatus(ctx context.Context) (AssessmentStatus, error) {
	var st AssessmentStatus
	err := c.do(ctx, http.MethodGet, "/assessment-status", nil, nil, &st)
	return st, err
}

// AssessmentResult returns the saved final result. The backend answers 404
// until all stages are complete.
func (c *Client) AssessmentResult(ctx context.Context) (AssessmentResult, error) {
	var res AssessmentResult
	err := c.do(ctx, http.MethodGet, "/assessment-result", nil, nil, &res)
	return res, err
}

// RecommendMentors lists mentors for an occupation title.
func (c *Client) RecommendMentors(ctx context.Context, occupation string) ([]Mentor, error) {
	q := url.Values{}
	q.Set("occupation_title", occupation)
	var out []Mentor
	err := c.do(ctx, http.MethodGet, "/mentors/recommend", q, nil, &out)
	return out, err
}

// CreateMentorshipRequest asks a mentor for mentorship.
func (c *Client) CreateMentorshipRequest(ctx context.Context, mentorID int) (MentorshipRequest, error) {
	body := struct {
		MentorProfileID int `json:"mentorprofileid"`
	}{mentorID}
	var out MentorshipRequest
	err := c.do(ctx, http.MethodPost, "/mentorship/requests", nil, body, &out)
	return out, err
}

// MentorshipRequests lists the current user's mentorship requests.
func (c *Client) MentorshipRequests(ctx context.Context) ([]MentorshipRequestDetail, error) {
	var out []MentorshipRequestDetail
	err := c.do(ctx, http.MethodGet, "/mentorship/requests", nil, nil, &out)
	return out, err
}

// RecommendCourses returns courses matching competency keywords.
func (c *Client) RecommendCourses(ctx context.Context, keywords []string, limit int) ([]Course, error) {
	if limit <= 0 {
		limit = DefaultCourseLimit
	}
	clean := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	var out []Course
	err := c.do(ctx, http.MethodPost, "/courses/recommendations", nil,
		CourseRecommendationRequest{Keywords: clean, Limit: limit}, &out)
	return out, err
}

// Courses lists the course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var out []Course
	err := c.do(ctx, http.MethodGet, "/courses", nil, nil, &out)
	return out, err
}

// Course returns one course by id.
func (c *Client) Course(ctx context.Context, id int) (Course, error) {
	var out Course
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%d", id), nil, nil, &out)
	return out, err
}

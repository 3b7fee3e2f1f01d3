package api

// Timestamps are kept as strings: the backend serializes naive datetimes
// without a zone, which time.Time cannot decode.

// User is the canonical user record returned by GET /users/me.
type User struct {
	ID               int    `json:"userid"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Age              *int   `json:"age,omitempty"`
	UserTypeID       *int   `json:"usertypeid,omitempty"`
	EducationLevelID *int   `json:"educationlevelid,omitempty"`
	CreatedAt        string `json:"createdat,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Age              *int   `json:"age,omitempty"`
	UserTypeID       int    `json:"usertypeid"`
	EducationLevelID *int   `json:"educationlevelid,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the credential issued by register and login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Option is one answer choice of a scenario.
type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Scenario is one multiple-choice situational question.
type Scenario struct {
	ID             int      `json:"id"`
	Text           string   `json:"text"`
	CompetencyName string   `json:"competency_name"`
	Options        []Option `json:"options"`
}

// HasOption reports whether letter is one of the scenario's options.
func (s Scenario) HasOption(letter string) bool {
	for _, o := range s.Options {
		if o.Letter == letter {
			return true
		}
	}
	return false
}

// Response is the user's selected option for one scenario.
type Response struct {
	ScenarioID   int    `json:"scenario_id"`
	OptionLetter string `json:"option_letter"`
}

// CompatibilityScore is the percentage match for one occupation.
type CompatibilityScore struct {
	Occupation string  `json:"meslek"`
	Score      float64 `json:"uyum"`
}

// CompetencyComparison compares the user's score with the winning
// occupation's group average.
type CompetencyComparison struct {
	Competency   string  `json:"yetkinlik"`
	UserScore    float64 `json:"kullanici_skoru"`
	GroupAverage float64 `json:"grup_ortalamasi"`
	Difference   float64 `json:"fark"`
}

// PredictionResult is the server-computed outcome of a submission.
type PredictionResult struct {
	Compatibility     []CompatibilityScore   `json:"uyum_skorlari"`
	WinningOccupation string                 `json:"kazanan_meslek"`
	Comparisons       []CompetencyComparison `json:"yetkinlik_karsilastirmasi"`
}

// Progress is the server's view of assessment progress.
type Progress struct {
	TotalResponses  int   `json:"total_responses"`
	CurrentStage    int   `json:"current_stage"`
	CompletedStages []int `json:"completed_stages"`
}

// AssessmentStatus reports whether a final result exists.
type AssessmentStatus struct {
	HasCompletedAssessment bool   `json:"has_completed_assessment"`
	CanViewResults         bool   `json:"can_view_results"`
	CompletedAt            string `json:"assessment_completed_at,omitempty"`
	RecommendedOccupation  string `json:"recommended_occupation,omitempty"`
}

// AssessmentResult is the saved final result of a completed assessment.
type AssessmentResult struct {
	ID                            int                  `json:"id"`
	UserID                        int                  `json:"userid"`
	RecommendedOccupation         string               `json:"recommended_occupation"`
	OccupationCompatibilityScore  *float64             `json:"occupation_compatibility_score,omitempty"`
	CompetencyScores              map[string]float64   `json:"competency_scores"`
	StrongCompetencies            []string             `json:"strong_competencies"`
	WeakCompetencies              []string             `json:"weak_competencies"`
	OccupationCompatibilityScores []CompatibilityScore `json:"occupation_compatibility_scores"`
	CompletedAt                   string               `json:"assessment_completed_at,omitempty"`
	TotalResponses                int                  `json:"total_responses"`
	IsFinalResult                 bool                 `json:"is_final_result"`
}

// Mentor is a mentor profile recommended for an occupation.
type Mentor struct {
	ID            int    `json:"mentorprofileid"`
	UserID        int    `json:"userid"`
	OccupationID  int    `json:"occupationid"`
	Username      string `json:"username,omitempty"`
	Company       string `json:"company,omitempty"`
	Title         string `json:"title,omitempty"`
	PhotoURL      string `json:"photourl,omitempty"`
	Bio           string `json:"bio,omitempty"`
	SupportTopics string `json:"supporttopics,omitempty"`
	Quote         string `json:"quote,omitempty"`
}

// DisplayName returns the mentor's name, falling back to the title.
func (m Mentor) DisplayName() string {
	if m.Username != "" {
		return m.Username
	}
	return m.Title
}

// MentorshipRequest is the record created by POST /mentorship/requests.
type MentorshipRequest struct {
	ID              int    `json:"mentorshiprequestid"`
	MentorProfileID int    `json:"mentorprofileid"`
	StatusID        int    `json:"statusid"`
	CreatedAt       string `json:"createdat,omitempty"`
}

// MentorshipRequestDetail is a mentorship request with mentor and status info.
type MentorshipRequestDetail struct {
	MentorshipRequest
	UserID         int    `json:"userid"`
	MentorName     string `json:"mentor_name,omitempty"`
	MentorCompany  string `json:"mentor_company,omitempty"`
	MentorTitle    string `json:"mentor_title,omitempty"`
	MentorPhotoURL string `json:"mentor_photourl,omitempty"`
	StatusName     string `json:"status_name,omitempty"`
}

// Course is a learning resource.
type Course struct {
	ID           int    `json:"courseid"`
	Title        string `json:"title"`
	Provider     string `json:"provider,omitempty"`
	DurationText string `json:"durationtext,omitempty"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"imageurl,omitempty"`
	CourseURL    string `json:"courseurl"`
}

// CourseRecommendationRequest is the body of POST /courses/recommendations.
type CourseRecommendationRequest struct {
	Keywords []string `json:"competency_keywords"`
	Limit    int      `json:"limit,omitempty"`
}

package i18n

// Key identifies a translatable message. Every key must have an entry in
// every catalog.
type Key int

const (
	KeyAppName Key = iota
	KeyLoading
	KeyBack
	KeyQuit
	KeyRetry
	KeySelect
	KeyNavigate
	KeyContinue
	KeyLanguage

	// Home menu.
	KeyMenuStartAssessment
	KeyMenuContinueAssessment
	KeyMenuResults
	KeyMenuRequests
	KeyMenuLanguage
	KeyMenuSignOut
	KeyMenuExit
	KeyHomeGreeting
	KeyHomeProgress

	// Authentication.
	KeyAuthTitleSignIn
	KeyAuthTitleSignUp
	KeyFieldName
	KeyFieldEmail
	KeyFieldPassword
	KeyAuthSubmitSignIn
	KeyAuthSubmitSignUp
	KeyAuthSwitchToSignUp
	KeyAuthSwitchToSignIn
	KeyAuthWelcome
	KeyAuthSignedOut
	KeyAuthSessionExpired
	KeyAuthRegistered

	// Validation.
	KeyValidationRequired
	KeyValidationEmail
	KeyValidationPasswordShort

	// Request errors.
	KeyErrNetwork
	KeyErrUnauthorized
	KeyErrConflict
	KeyErrUnprocessable
	KeyErrBadRequest
	KeyErrNotFound
	KeyErrClientGeneric
	KeyErrServer
	KeyErrDecode
	KeyErrCanceled
	KeyErrLoadScenarios
	KeyErrSubmit

	// Stage journey.
	KeyJourneyTitle
	KeyJourneyHint
	KeyStageLabel
	KeyStageLocked
	KeyStageActive
	KeyStageCompleted

	// Scenario flow.
	KeyFlowTitle
	KeyFlowCountdown
	KeyFlowScenarioOf
	KeyFlowCompetency
	KeyFlowNext
	KeyFlowPrevious
	KeyFlowFinish
	KeyFlowSubmitting
	KeyFlowSubmitted
	KeyFlowSelectFirst
	KeyFlowEmpty

	// Results.
	KeyResultsTitle
	KeyResultsWinner
	KeyResultsCompatibility
	KeyResultsCompetencies
	KeyResultsYou
	KeyResultsGroupAverage
	KeyResultsStrengths
	KeyResultsGrowth
	KeyResultsCourses
	KeyResultsMentors
	KeyResultsNoResult
	KeyResultsInsight
	KeyResultsInsightUnavailable
	KeyResultsNone

	// Career insight.
	KeyInsightNextSteps
	KeyInsightFit
	KeyInsightFitStrong
	KeyInsightFitModerate
	KeyInsightFitExploratory
	KeyInsightGenerating
	KeyInsightDraftSummary
	KeyInsightDraftStrength
	KeyInsightDraftGrowth
	KeyInsightDraftNextStep

	// Mentorship.
	KeyMentorRequestSent
	KeyMentorRequestsTitle
	KeyMentorNone
	KeyMentorRequestAction
	KeyMentorStatus

	// Competencies.
	KeyCompAnalytical
	KeyCompNumerical
	KeyCompStress
	KeyCompEmpathy
	KeyCompTeamwork
	KeyCompDecision
	KeyCompResilience
	KeyCompTechnology
	KeyCompUnknown

	// Terminal UI.
	KeyMenuHistory
	KeyHistoryTitle
	KeyHistoryEmpty
	KeyHistorySucceeded
	KeyHistoryFailed
	KeyResultsOverview
	KeyResultsTabHint
	KeyCoursesNone
	KeyRequestsNone
	KeyInsightGenerateHint
	KeyInsightRegenerate
	KeyAuthSubmitting
	KeyAuthSwitchMode
	KeyFlowRetryHint
	KeyFlowBackHint
	KeyFlowSkip
	KeyJourneyLocked
	KeyJourneyOffline
	KeyJourneyDone
	KeyRefresh
	KeyHistoryDetails
	KeyTooSmall
	KeyRequestsAll
	KeyRequestSent
	KeyRequestAccepted
	KeyRequestRejected

	keyCount
)

// Count returns the number of defined keys.
func Count() int { return int(keyCount) }

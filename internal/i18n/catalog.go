package i18n

type catalog [keyCount]string

var catalogs = map[Locale]*catalog{
	English: &english,
	Turkish: &turkish,
}

var english = catalog{
	KeyAppName:  "Yetria",
	KeyLoading:  "Loading...",
	KeyBack:     "Back",
	KeyQuit:     "Quit",
	KeyRetry:    "Retry",
	KeySelect:   "Select",
	KeyNavigate: "Navigate",
	KeyContinue: "Continue",
	KeyLanguage: "Language",

	KeyMenuStartAssessment:    "START ASSESSMENT",
	KeyMenuContinueAssessment: "CONTINUE ASSESSMENT",
	KeyMenuResults:            "MY RESULTS",
	KeyMenuRequests:           "MENTORSHIP REQUESTS",
	KeyMenuLanguage:           "LANGUAGE: ENGLISH",
	KeyMenuSignOut:            "SIGN OUT",
	KeyMenuExit:               "EXIT",
	KeyHomeGreeting:           "Hello, %s",
	KeyHomeProgress:           "%d of %d stages completed",

	KeyAuthTitleSignIn:    "Sign in",
	KeyAuthTitleSignUp:    "Create an account",
	KeyFieldName:          "Name",
	KeyFieldEmail:         "Email",
	KeyFieldPassword:      "Password",
	KeyAuthSubmitSignIn:   "Sign in",
	KeyAuthSubmitSignUp:   "Sign up",
	KeyAuthSwitchToSignUp: "No account yet? Press Ctrl+R to register",
	KeyAuthSwitchToSignIn: "Already registered? Press Ctrl+R to sign in",
	KeyAuthWelcome:        "Welcome, %s!",
	KeyAuthSignedOut:      "You have been signed out.",
	KeyAuthSessionExpired: "Your session has expired. Please sign in again.",
	KeyAuthRegistered:     "Registration successful.",

	KeyValidationRequired:      "This field is required.",
	KeyValidationEmail:         "Enter a valid email address.",
	KeyValidationPasswordShort: "Password must be at least %d characters.",

	KeyErrNetwork:       "Cannot reach the server. Check your internet connection.",
	KeyErrUnauthorized:  "Email or password is incorrect.",
	KeyErrConflict:      "This record already exists.",
	KeyErrUnprocessable: "Some of the submitted information is invalid.",
	KeyErrBadRequest:    "The request could not be processed.",
	KeyErrNotFound:      "The requested information was not found.",
	KeyErrClientGeneric: "Something went wrong with your request.",
	KeyErrServer:        "The server ran into a problem. Please try again later.",
	KeyErrDecode:        "The server sent an unexpected response.",
	KeyErrCanceled:      "The request was cancelled.",
	KeyErrLoadScenarios: "Scenarios could not be loaded.",
	KeyErrSubmit:        "Your answers could not be submitted.",

	KeyJourneyTitle:   "Assessment stages",
	KeyJourneyHint:    "Complete the stages in order. Your progress is saved after each stage.",
	KeyStageLabel:     "Stage %d",
	KeyStageLocked:    "locked",
	KeyStageActive:    "ready",
	KeyStageCompleted: "completed",

	KeyFlowTitle:       "Stage %d",
	KeyFlowCountdown:   "Starting in %d...",
	KeyFlowScenarioOf:  "Scenario %d of %d",
	KeyFlowCompetency:  "Competency: %s",
	KeyFlowNext:        "Next",
	KeyFlowPrevious:    "Previous",
	KeyFlowFinish:      "Finish stage",
	KeyFlowSubmitting:  "Submitting your answers...",
	KeyFlowSubmitted:   "Stage %d completed!",
	KeyFlowSelectFirst: "Choose an option first.",
	KeyFlowEmpty:       "There are no scenarios for this stage yet.",

	KeyResultsTitle:              "Your results",
	KeyResultsWinner:             "Best match: %s (%d%%)",
	KeyResultsCompatibility:      "Career compatibility",
	KeyResultsCompetencies:       "Competencies",
	KeyResultsYou:                "You",
	KeyResultsGroupAverage:       "Group average",
	KeyResultsStrengths:          "Strengths",
	KeyResultsGrowth:             "Areas to develop",
	KeyResultsCourses:            "Suggested courses",
	KeyResultsMentors:            "Mentors",
	KeyResultsNoResult:           "Complete all four stages to see your results.",
	KeyResultsInsight:            "Career insight",
	KeyResultsInsightUnavailable: "Career insight is not configured.",
	KeyResultsNone:               "None",

	KeyInsightNextSteps:      "Next steps",
	KeyInsightFit:            "Fit: %s",
	KeyInsightFitStrong:      "strong",
	KeyInsightFitModerate:    "moderate",
	KeyInsightFitExploratory: "worth exploring",
	KeyInsightGenerating:     "Preparing your career insight...",
	KeyInsightDraftSummary:   "Your answers point most clearly to %s, with a %d%% match.",
	KeyInsightDraftStrength:  "Lean on your %s in projects and interviews.",
	KeyInsightDraftGrowth:    "Set aside practice time for %s.",
	KeyInsightDraftNextStep:  "Talk to a mentor who works as %s.",

	KeyMentorRequestSent:   "Mentorship request sent to %s.",
	KeyMentorRequestsTitle: "Mentorship requests",
	KeyMentorNone:          "No mentors found.",
	KeyMentorRequestAction: "Request mentorship",
	KeyMentorStatus:        "Status: %s",

	KeyCompAnalytical: "Analytical Thinking",
	KeyCompNumerical:  "Numerical Intelligence",
	KeyCompStress:     "Stress Management",
	KeyCompEmpathy:    "Empathy",
	KeyCompTeamwork:   "Teamwork",
	KeyCompDecision:   "Quick and Calm Decision Making",
	KeyCompResilience: "Emotional Resilience",
	KeyCompTechnology: "Technology Adaptation",
	KeyCompUnknown:    "Other",

	KeyMenuHistory:         "SUBMISSION HISTORY",
	KeyHistoryTitle:        "Submission history",
	KeyHistoryEmpty:        "No submissions yet.",
	KeyHistorySucceeded:    "submitted",
	KeyHistoryFailed:       "failed: %s",
	KeyResultsOverview:     "Overview",
	KeyResultsTabHint:      "Switch tab",
	KeyCoursesNone:         "No course recommendations yet.",
	KeyRequestsNone:        "You have not sent any mentorship requests.",
	KeyInsightGenerateHint: "Press G to generate your career insight.",
	KeyInsightRegenerate:   "Regenerate",
	KeyAuthSubmitting:      "Please wait...",
	KeyAuthSwitchMode:      "Sign in / Sign up",
	KeyFlowRetryHint:       "Press R to try again or Esc to go back.",
	KeyFlowBackHint:        "Press Esc to go back.",
	KeyFlowSkip:            "Skip",
	KeyJourneyLocked:       "Complete the earlier stages first.",
	KeyJourneyOffline:      "Progress could not be loaded. Starting from stage 1.",
	KeyJourneyDone:         "All stages are complete.",
	KeyRefresh:             "Refresh",
	KeyHistoryDetails:      "Details",
	KeyTooSmall:            "Terminal too small. Resize to at least %dx%d.",
	KeyRequestsAll:         "All",
	KeyRequestSent:         "Request sent",
	KeyRequestAccepted:     "Accepted",
	KeyRequestRejected:     "Rejected",
}

var turkish = catalog{
	KeyAppName:  "Yetria",
	KeyLoading:  "Yükleniyor...",
	KeyBack:     "Geri",
	KeyQuit:     "Çıkış",
	KeyRetry:    "Tekrar dene",
	KeySelect:   "Seç",
	KeyNavigate: "Gezin",
	KeyContinue: "Devam",
	KeyLanguage: "Dil",

	KeyMenuStartAssessment:    "DEĞERLENDİRMEYE BAŞLA",
	KeyMenuContinueAssessment: "DEĞERLENDİRMEYE DEVAM ET",
	KeyMenuResults:            "SONUÇLARIM",
	KeyMenuRequests:           "MENTORLUK TALEPLERİ",
	KeyMenuLanguage:           "DİL: TÜRKÇE",
	KeyMenuSignOut:            "OTURUMU KAPAT",
	KeyMenuExit:               "ÇIKIŞ",
	KeyHomeGreeting:           "Merhaba, %s",
	KeyHomeProgress:           "%d / %d aşama tamamlandı",

	KeyAuthTitleSignIn:    "Giriş yap",
	KeyAuthTitleSignUp:    "Hesap oluştur",
	KeyFieldName:          "Ad Soyad",
	KeyFieldEmail:         "E-posta",
	KeyFieldPassword:      "Şifre",
	KeyAuthSubmitSignIn:   "Giriş yap",
	KeyAuthSubmitSignUp:   "Kayıt ol",
	KeyAuthSwitchToSignUp: "Hesabınız yok mu? Kayıt için Ctrl+R",
	KeyAuthSwitchToSignIn: "Zaten kayıtlı mısınız? Giriş için Ctrl+R",
	KeyAuthWelcome:        "Hoş geldin, %s!",
	KeyAuthSignedOut:      "Oturumunuz kapatıldı.",
	KeyAuthSessionExpired: "Oturumunuzun süresi doldu. Lütfen tekrar giriş yapın.",
	KeyAuthRegistered:     "Kayıt başarılı.",

	KeyValidationRequired:      "Bu alan zorunludur.",
	KeyValidationEmail:         "Geçerli bir e-posta adresi girin.",
	KeyValidationPasswordShort: "Şifre en az %d karakter olmalıdır.",

	KeyErrNetwork:       "Sunucuya ulaşılamıyor. İnternet bağlantınızı kontrol edin.",
	KeyErrUnauthorized:  "E-posta adresi veya şifre hatalı.",
	KeyErrConflict:      "Bu kayıt zaten mevcut.",
	KeyErrUnprocessable: "Gönderilen bilgilerin bazıları geçersiz.",
	KeyErrBadRequest:    "İstek işlenemedi.",
	KeyErrNotFound:      "İstenen bilgi bulunamadı.",
	KeyErrClientGeneric: "İsteğinizle ilgili bir sorun oluştu.",
	KeyErrServer:        "Sunucuda bir sorun oluştu. Lütfen daha sonra tekrar deneyin.",
	KeyErrDecode:        "Sunucudan beklenmeyen bir yanıt geldi.",
	KeyErrCanceled:      "İstek iptal edildi.",
	KeyErrLoadScenarios: "Senaryolar yüklenemedi.",
	KeyErrSubmit:        "Cevaplarınız gönderilemedi.",

	KeyJourneyTitle:   "Değerlendirme aşamaları",
	KeyJourneyHint:    "Aşamaları sırayla tamamlayın. İlerlemeniz her aşamadan sonra kaydedilir.",
	KeyStageLabel:     "Aşama %d",
	KeyStageLocked:    "kilitli",
	KeyStageActive:    "hazır",
	KeyStageCompleted: "tamamlandı",

	KeyFlowTitle:       "Aşama %d",
	KeyFlowCountdown:   "%d saniye içinde başlıyor...",
	KeyFlowScenarioOf:  "Senaryo %d / %d",
	KeyFlowCompetency:  "Yetkinlik: %s",
	KeyFlowNext:        "İleri",
	KeyFlowPrevious:    "Geri",
	KeyFlowFinish:      "Aşamayı bitir",
	KeyFlowSubmitting:  "Cevaplarınız gönderiliyor...",
	KeyFlowSubmitted:   "Aşama %d tamamlandı!",
	KeyFlowSelectFirst: "Önce bir seçenek belirleyin.",
	KeyFlowEmpty:       "Bu aşama için henüz senaryo yok.",

	KeyResultsTitle:              "Sonuçların",
	KeyResultsWinner:             "En uygun meslek: %s (%%%d)",
	KeyResultsCompatibility:      "Meslek uyumu",
	KeyResultsCompetencies:       "Yetkinlikler",
	KeyResultsYou:                "Sen",
	KeyResultsGroupAverage:       "Grup ortalaması",
	KeyResultsStrengths:          "Güçlü yönler",
	KeyResultsGrowth:             "Gelişim alanları",
	KeyResultsCourses:            "Önerilen kurslar",
	KeyResultsMentors:            "Mentorlar",
	KeyResultsNoResult:           "Sonuçları görmek için dört aşamayı da tamamlayın.",
	KeyResultsInsight:            "Kariyer içgörüsü",
	KeyResultsInsightUnavailable: "Kariyer içgörüsü yapılandırılmamış.",
	KeyResultsNone:               "Yok",

	KeyInsightNextSteps:      "Sonraki adımlar",
	KeyInsightFit:            "Uyum: %s",
	KeyInsightFitStrong:      "güçlü",
	KeyInsightFitModerate:    "orta",
	KeyInsightFitExploratory: "keşfetmeye değer",
	KeyInsightGenerating:     "Kariyer içgörün hazırlanıyor...",
	KeyInsightDraftSummary:   "Cevapların en çok %s mesleğine işaret ediyor, uyum %%%d.",
	KeyInsightDraftStrength:  "%s yetkinliğini projelerde ve mülakatlarda öne çıkar.",
	KeyInsightDraftGrowth:    "%s için düzenli pratik zamanı ayır.",
	KeyInsightDraftNextStep:  "%s olarak çalışan bir mentorla görüş.",

	KeyMentorRequestSent:   "%s için mentorluk talebi gönderildi.",
	KeyMentorRequestsTitle: "Mentorluk talepleri",
	KeyMentorNone:          "Mentor bulunamadı.",
	KeyMentorRequestAction: "Mentorluk talep et",
	KeyMentorStatus:        "Durum: %s",

	KeyCompAnalytical: "Analitik Düşünme",
	KeyCompNumerical:  "Sayısal Zeka",
	KeyCompStress:     "Stres Yönetimi",
	KeyCompEmpathy:    "Empati",
	KeyCompTeamwork:   "Takım Çalışması",
	KeyCompDecision:   "Hızlı ve Soğukkanlı Karar Alma",
	KeyCompResilience: "Duygusal Dayanıklılık",
	KeyCompTechnology: "Teknoloji Adaptasyonu",
	KeyCompUnknown:    "Diğer",

	KeyMenuHistory:         "GÖNDERİM GEÇMİŞİ",
	KeyHistoryTitle:        "Gönderim geçmişi",
	KeyHistoryEmpty:        "Henüz gönderim yok.",
	KeyHistorySucceeded:    "gönderildi",
	KeyHistoryFailed:       "başarısız: %s",
	KeyResultsOverview:     "Genel bakış",
	KeyResultsTabHint:      "Sekme değiştir",
	KeyCoursesNone:         "Henüz kurs önerisi yok.",
	KeyRequestsNone:        "Henüz mentorluk talebi göndermediniz.",
	KeyInsightGenerateHint: "Kariyer içgörünü oluşturmak için G tuşuna bas.",
	KeyInsightRegenerate:   "Yeniden oluştur",
	KeyAuthSubmitting:      "Lütfen bekleyin...",
	KeyAuthSwitchMode:      "Giriş / Kayıt",
	KeyFlowRetryHint:       "Tekrar denemek için R, geri dönmek için Esc tuşuna bas.",
	KeyFlowBackHint:        "Geri dönmek için Esc tuşuna bas.",
	KeyFlowSkip:            "Atla",
	KeyJourneyLocked:       "Önce önceki aşamaları tamamlayın.",
	KeyJourneyOffline:      "İlerleme yüklenemedi. 1. aşamadan başlanıyor.",
	KeyJourneyDone:         "Tüm aşamalar tamamlandı.",
	KeyRefresh:             "Yenile",
	KeyHistoryDetails:      "Ayrıntılar",
	KeyTooSmall:            "Terminal çok küçük. En az %dx%d olacak şekilde büyütün.",
	KeyRequestsAll:         "Tümü",
	KeyRequestSent:         "Talep Gönderildi",
	KeyRequestAccepted:     "Kabul Edildi",
	KeyRequestRejected:     "Reddedildi",
}

// Package advisor turns an assessment report into narrative career guidance
// using an LLM provider, and caches the result per report and language.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/llm"
	"github.com/yetria/yetria/internal/results"
	"github.com/yetria/yetria/internal/store"
)

var (
	// ErrNotConfigured is returned when no LLM provider is configured.
	ErrNotConfigured = errors.New("career insight is not configured")

	// ErrEmptyReport is returned for a report without any result.
	ErrEmptyReport = errors.New("report has no results")
)

const (
	maxListItems = 4
	maxNextSteps = 3
)

// Insight is the generated guidance.
type Insight struct {
	Summary    string   `json:"summary"`
	Fit        string   `json:"fit"`
	Strengths  []string `json:"strengths"`
	GrowthTips []string `json:"growth_tips"`
	NextSteps  []string `json:"next_steps"`
}

// Result is an insight together with where it came from.
type Result struct {
	Insight   Insight
	Provider  string
	Model     string
	Cached    bool
	CreatedAt time.Time
}

// Options configures an Advisor.
type Options struct {
	// ProviderName is recorded with cached insights.
	ProviderName string

	// Timeout bounds one generation, retries included. Zero means no limit.
	Timeout time.Duration

	MaxTokens   int
	Temperature float64

	// SeedDraft makes a mock provider answer with the Draft of the report.
	SeedDraft bool
}

// Advisor generates and caches career insights. A nil provider yields an
// Advisor whose Generate always returns ErrNotConfigured.
type Advisor struct {
	provider llm.Provider
	cache    store.InsightRepo
	opts     Options
	log      *zap.Logger
}

// New creates an Advisor. cache and log may be nil.
func New(provider llm.Provider, cache store.InsightRepo, opts Options, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1024
	}
	return &Advisor{provider: provider, cache: cache, opts: opts, log: log.Named("advisor")}
}

// Available reports whether a provider is configured.
func (a *Advisor) Available() bool {
	return a != nil && a.provider != nil
}

// Generate returns the insight for r in the given language, from the cache
// when one exists.
func (a *Advisor) Generate(ctx context.Context, r *results.Report, locale i18n.Locale) (*Result, error) {
	return a.generate(ctx, r, locale, true)
}

// Regenerate ignores any cached insight and replaces it.
func (a *Advisor) Regenerate(ctx context.Context, r *results.Report, locale i18n.Locale) (*Result, error) {
	return a.generate(ctx, r, locale, false)
}

func (a *Advisor) generate(ctx context.Context, r *results.Report, locale i18n.Locale, useCache bool) (*Result, error) {
	if !a.Available() {
		return nil, ErrNotConfigured
	}
	if r == nil || r.Empty() {
		return nil, ErrEmptyReport
	}

	key := cacheKey(r, locale)
	if useCache {
		if res := a.lookup(ctx, key); res != nil {
			return res, nil
		}
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeCareerInsight)
	a.seedDraft(r, locale)

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(r, locale)}},
		Schema:      InsightSchema,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("career insight: %w", err)
	}

	var in Insight
	if err := json.Unmarshal(resp.Content, &in); err != nil {
		return nil, fmt.Errorf("parse career insight: %w", err)
	}
	in.normalize()

	res := &Result{
		Insight:   in,
		Provider:  a.opts.ProviderName,
		Model:     resp.Model,
		CreatedAt: time.Now(),
	}
	a.save(ctx, key, res)
	return res, nil
}

func (a *Advisor) seedDraft(r *results.Report, locale i18n.Locale) {
	m, ok := a.provider.(*llm.MockProvider)
	if !ok || !a.opts.SeedDraft {
		return
	}
	tr, err := i18n.New(locale)
	if err != nil {
		tr = i18n.MustNew(i18n.DefaultLocale)
	}
	content, err := json.Marshal(Draft(r, tr))
	if err != nil {
		a.log.Warn("marshal draft insight", zap.Error(err))
		return
	}
	m.AddResponse(llm.MockResponse{Content: content})
}

func (a *Advisor) lookup(ctx context.Context, key string) *Result {
	if a.cache == nil {
		return nil
	}
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		a.log.Warn("insight cache read failed", zap.Error(err))
		return nil
	}
	if cached == nil {
		return nil
	}
	var in Insight
	if err := json.Unmarshal(cached.Content, &in); err != nil {
		a.log.Warn("discarding unreadable cached insight", zap.String("fingerprint", key), zap.Error(err))
		return nil
	}
	a.log.Debug("insight cache hit", zap.String("fingerprint", key))
	return &Result{
		Insight:   in,
		Provider:  cached.Provider,
		Model:     cached.Model,
		Cached:    true,
		CreatedAt: cached.CreatedAt,
	}
}

// save stores res. A failed write only costs a regeneration later, so it
// is logged and not returned.
func (a *Advisor) save(ctx context.Context, key string, res *Result) {
	if a.cache == nil {
		return
	}
	content, err := json.Marshal(res.Insight)
	if err != nil {
		a.log.Warn("encode insight", zap.Error(err))
		return
	}
	err = a.cache.Save(context.WithoutCancel(ctx), &store.Insight{
		Fingerprint: key,
		Provider:    res.Provider,
		Model:       res.Model,
		Content:     content,
		CreatedAt:   res.CreatedAt,
	})
	if err != nil {
		a.log.Warn("insight cache write failed", zap.Error(err))
	}
}

func cacheKey(r *results.Report, locale i18n.Locale) string {
	return r.Fingerprint() + ":" + string(locale)
}

func (in *Insight) normalize() {
	in.Summary = strings.TrimSpace(in.Summary)
	in.Strengths = clip(in.Strengths, maxListItems)
	in.GrowthTips = clip(in.GrowthTips, maxListItems)
	in.NextSteps = clip(in.NextSteps, maxNextSteps)
}

// clip drops blank items and keeps at most n.
func clip(items []string, n int) []string {
	out := make([]string, 0, min(len(items), n))
	for _, s := range items {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		if len(out) == n {
			break
		}
		out = append(out, s)
	}
	return out
}

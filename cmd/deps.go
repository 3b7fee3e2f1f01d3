package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yetria/yetria/internal/advisor"
	"github.com/yetria/yetria/internal/api"
	"github.com/yetria/yetria/internal/assessment"
	"github.com/yetria/yetria/internal/config"
	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/identity"
	"github.com/yetria/yetria/internal/llm"
	"github.com/yetria/yetria/internal/logging"
	"github.com/yetria/yetria/internal/screens/env"
	"github.com/yetria/yetria/internal/store"
)

// defaultCourseLimit is the number of course recommendations requested.
const defaultCourseLimit = 7

var errNotSignedIn = errors.New("not signed in; run `yetria login` first")

// deps is everything a command needs, built from configuration.
type deps struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	tr       *i18n.Translator
	client   *api.Client
	identity *identity.Store
	service  *assessment.Service
	advisor  *advisor.Advisor

	closers []func()
}

// setupOptions tunes setup for the caller.
type setupOptions struct {
	// logToFile sends logs to the log file even when none is configured,
	// so the terminal UI's screen stays clean.
	logToFile bool

	// withAdvisor builds the LLM provider for career insights.
	withAdvisor bool
}

// setup loads configuration and opens every service. The session is
// restored; a rejected credential is reported but not fatal.
func setup(cmd *cobra.Command, opts setupOptions) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(settings, configFile)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	logPath := cfg.Log.Path
	if logPath == "" && opts.logToFile {
		if logPath, err = config.DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	log, syncLog, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Path: logPath})
	if err != nil {
		return nil, err
	}
	d.log = log
	d.closers = append(d.closers, syncLog)

	if err := d.openStore(); err != nil {
		d.Close()
		return nil, err
	}
	d.tr = i18n.MustNew(d.locale(ctx, cmd))

	d.client, err = api.New(api.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		Logger:     log,
		Translator: d.tr,
	})
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create API client: %w", err)
	}

	d.identity = identity.New(d.client, d.store.LocalStorage(), d.tr, log)
	d.closers = append(d.closers, d.identity.Close)
	if err := d.identity.Restore(ctx); err != nil && !errors.Is(err, identity.ErrSessionExpired) {
		d.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	d.service = assessment.NewService(d.client, d.store.EventRepo(), d.userID, log)

	if opts.withAdvisor {
		d.advisor = d.newAdvisor(ctx)
	} else {
		d.advisor = advisor.New(nil, nil, advisor.Options{}, log)
	}
	return d, nil
}

func (d *deps) openStore() error {
	path := d.cfg.DB
	var err error
	if path == "" {
		if path, err = store.DefaultDBPath(); err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	} else if err = store.EnsureDir(path); err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	d.store, err = store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, func() { _ = d.store.Close() })
	d.log.Debug("store opened", zap.String("path", path))
	return nil
}

// locale is the language chosen in the app, falling back to the
// configured one. An explicit flag or environment variable wins.
func (d *deps) locale(ctx context.Context, cmd *cobra.Command) i18n.Locale {
	if cmd.Flags().Changed("locale") || os.Getenv(config.EnvPrefix+"_LOCALE") != "" {
		return d.cfg.LocaleValue()
	}
	saved, ok, err := d.store.LocalStorage().Get(ctx, store.KeyLocale)
	if err != nil {
		d.log.Warn("read saved locale", zap.Error(err))
	}
	if ok {
		if loc, err := i18n.ParseLocale(saved); err == nil {
			return loc
		}
	}
	return d.cfg.LocaleValue()
}

func (d *deps) newAdvisor(ctx context.Context) *advisor.Advisor {
	pcfg, ok := d.cfg.Provider()
	if !ok {
		d.log.Info("no LLM provider configured; career insight unavailable")
		return advisor.New(nil, nil, advisor.Options{}, d.log)
	}
	provider, err := llm.NewProvider(ctx, pcfg, d.store.EventRepo(), d.log)
	if err != nil {
		d.log.Warn("LLM provider unavailable", zap.String("provider", pcfg.Provider), zap.Error(err))
		return advisor.New(nil, nil, advisor.Options{}, d.log)
	}
	return advisor.New(provider, d.store.InsightRepo(), advisor.Options{
		ProviderName: pcfg.Provider,
		Timeout:      pcfg.Timeout,
		SeedDraft:    pcfg.Provider == llm.ProviderMock,
	}, d.log)
}

func (d *deps) userID() int {
	if u, ok := d.identity.User(); ok {
		return u.ID
	}
	return 0
}

// requireUser returns the signed-in user or errNotSignedIn.
func (d *deps) requireUser() (api.User, error) {
	u, ok := d.identity.User()
	if !ok {
		return api.User{}, errNotSignedIn
	}
	return u, nil
}

// env builds the screen environment for the terminal UI.
func (d *deps) env() *env.Env {
	return &env.Env{
		Tr:          d.tr,
		Identity:    d.identity,
		Gateway:     d.client,
		Assessment:  d.service,
		Advisor:     d.advisor,
		Events:      d.store.EventRepo(),
		Local:       d.store.LocalStorage(),
		Log:         d.log,
		CourseLimit: defaultCourseLimit,
	}
}

// fail maps a request error to the text shown to the user. A rejected
// credential also clears the local session.
func (d *deps) fail(err error) error {
	if d.identity.HandleError(err) {
		return errors.New(d.tr.T(i18n.KeyAuthSessionExpired))
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		d.log.Debug("request failed", zap.Error(err))
		return errors.New(api.UserMessage(err, d.tr))
	}
	return err
}

// Close releases everything in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/config"
	"github.com/abhisek/quizcrafter/internal/events"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/logging"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/service"
	"github.com/abhisek/quizcrafter/internal/sessionstore"
	"github.com/abhisek/quizcrafter/internal/store"
)

// runtime holds everything a quiz frontend needs. close releases it in
// reverse order of construction.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	service *service.QuizService

	closers []func() error
}

func (rt *runtime) onClose(f func() error) {
	rt.closers = append(rt.closers, f)
}

func (rt *runtime) close() {
	logger := rt.logger
	if logger == nil {
		logger = slog.Default()
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}
	rt.closers = nil
}

// buildOptions tweak buildRuntime per command.
type buildOptions struct {
	// logTo overrides the log destination; nil means log.file or stderr.
	logTo io.Writer

	// validate checks the command's configuration requirements.
	validate func(*config.Config) error
}

// buildRuntime opens the store, builds the provider, generator, session
// store and event bus, and starts the history recorder. Configuration
// problems are returned as *config.ConfigurationError before anything
// is opened.
func buildRuntime(cmd *cobra.Command, opts buildOptions) (*runtime, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	validate := opts.validate
	if validate == nil {
		validate = (*config.Config).ValidateLLM
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			rt.close()
		}
	}()

	logOut := opts.logTo
	if logOut == nil && cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		rt.onClose(f.Close)
		logOut = f
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	rt.logger, err = logging.New(logOut, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, &config.ConfigurationError{Key: "log", Message: err.Error()}
	}
	slog.SetDefault(rt.logger)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	rt.store, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.onClose(rt.store.Close)

	provider, err := newProvider(cmd, cfg, rt)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(ctx, cfg, rt)
	if err != nil {
		return nil, err
	}

	bus, err := events.NewBus(cfg.Events, rt.logger)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	rt.onClose(bus.Close)
	if bus.Subscriber() != nil {
		if err := startRecorder(ctx, bus, rt); err != nil {
			return nil, err
		}
	}

	rt.service = service.New(service.Options{
		Generator:     quizgen.New(provider, cfg.Quizgen()),
		Sessions:      sessions,
		Publisher:     bus,
		Logger:        rt.logger,
		FeedbackDelay: cfg.Quiz.FeedbackDelay,
	})

	rt.logger.Debug("runtime ready",
		"provider", cfg.LLM.Provider, "db", dbPath,
		"session_store", cfg.Session.Store, "events", cfg.Events.Driver)
	ok = true
	return rt, nil
}

// newProvider builds the configured LLM provider. For the mock provider
// --mock-file supplies the reply to every call.
func newProvider(cmd *cobra.Command, cfg *config.Config, rt *runtime) (llm.Provider, error) {
	mockFile, _ := cmd.Flags().GetString("mock-file")
	if cfg.LLM.Provider != llm.ProviderMock || mockFile == "" {
		p, err := llm.NewProvider(cmd.Context(), cfg.LLM, rt.store.EventRepo(), rt.logger)
		if err != nil {
			return nil, &config.ConfigurationError{Key: "llm", Message: err.Error()}
		}
		return p, nil
	}

	data, err := os.ReadFile(mockFile)
	if err != nil {
		return nil, &config.ConfigurationError{Key: "mock-file", Message: fmt.Sprintf("read mock file: %v", err)}
	}
	mock := llm.NewMockProvider()
	reply := llm.TextResponse(string(data))
	mock.Fallback = &reply
	return llm.Wrap(mock, cfg.LLM, rt.store.EventRepo(), rt.logger), nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, rt *runtime) (sessionstore.Store, error) {
	if cfg.Session.Store != config.SessionRedis {
		return sessionstore.NewMemory(cfg.Session.TTL), nil
	}
	client, err := sessionstore.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	rt.onClose(client.Close)
	return sessionstore.NewRedis(client, cfg.Session.TTL), nil
}

// startRecorder consumes quiz events into the history tables until the
// runtime is closed.
func startRecorder(ctx context.Context, bus *events.Bus, rt *runtime) error {
	rec, err := events.NewRecorder(bus, rt.store.QuizRepo(), rt.logger)
	if err != nil {
		return fmt.Errorf("events recorder: %w", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := rec.Run(context.WithoutCancel(ctx)); err != nil {
			rt.logger.Error("events recorder stopped", "error", err)
		}
	}()
	select {
	case <-rec.Running():
	case <-done:
		return fmt.Errorf("events recorder failed to start")
	}
	rt.onClose(func() error {
		err := rec.Close()
		<-done
		return err
	})
	return nil
}

// ExitCode prints err and maps it to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *config.ConfigurationError
	if errors.As(err, &ce) {
		fmt.Fprintln(os.Stderr, "Configuration error:", ce.Message)
		return 1
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

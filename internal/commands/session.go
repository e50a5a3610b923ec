package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/llmchat/internal/chat"
	"github.com/diogo/llmchat/internal/config"
	"github.com/diogo/llmchat/internal/logging"
)

// session bundles what a chat needs: the logger, the reply source and
// the controller that owns the conversation
type session struct {
	cfg        config.Config
	logger     *zap.Logger
	provider   chat.Provider
	controller *chat.Controller
	watcher    *chat.ResponsesWatcher
}

// newSession builds a session from the resolved config
func newSession(cfg config.Config, deps *Dependencies) (*session, error) {
	logger, err := logging.New(cfg.LogFile, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: logging disabled: %v\n", err)
		logger = zap.NewNop()
	}

	responses := chat.DefaultResponses()
	if cfg.ResponsesFile != "" {
		responses, err = chat.LoadResponses(cfg.ResponsesFile)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to load responses: %w", err)
		}
		logger.Debug("loaded canned responses",
			zap.String("path", cfg.ResponsesFile),
			zap.Int("count", len(responses)))
	}

	var provider chat.Provider
	if deps.NewProvider != nil {
		provider = deps.NewProvider(cfg, responses)
	} else {
		provider = chat.NewCannedProvider(
			chat.WithDelay(cfg.MinDelay(), cfg.MaxDelay()),
			chat.WithResponses(responses),
		)
	}

	controller := chat.NewController(provider,
		chat.WithTimeLayout(cfg.TimeLayout()),
		chat.WithReplyTimeout(cfg.ReplyTimeout()),
		chat.WithLogger(logger),
	)

	logger.Info("session started",
		zap.String("theme", cfg.TUITheme),
		zap.Int("min_delay_ms", cfg.MinDelayMs),
		zap.Int("max_delay_ms", cfg.MaxDelayMs))

	return &session{
		cfg:        cfg,
		logger:     logger,
		provider:   provider,
		controller: controller,
	}, nil
}

// watchResponses reloads the responses file into the canned provider when
// it changes. Sessions without a responses file or with a custom provider
// are left alone.
func (s *session) watchResponses(ctx context.Context) {
	canned, ok := s.provider.(*chat.CannedProvider)
	if !ok || s.cfg.ResponsesFile == "" {
		return
	}

	w := chat.NewResponsesWatcher(s.cfg.ResponsesFile, canned, chat.WithWatchLogger(s.logger))
	if err := w.Start(ctx); err != nil {
		s.logger.Warn("responses file will not be reloaded", zap.Error(err))
		return
	}
	s.watcher = w
}

// close stops the watcher and flushes buffered logs
func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	_ = s.logger.Sync()
}

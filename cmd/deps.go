package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
)

// deps is everything a tutor-facing command needs.
type deps struct {
	cfg     *config.Config
	store   *store.Store
	tutor   *tutor.Orchestrator
	closers []func() error
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}

// openDeps loads configuration, opens storage and builds the orchestrator.
// A missing LLM key is not fatal: LLM-backed handlers then answer with their
// error replies while the static dictionary keeps working.
func openDeps(cmd *cobra.Command, log *zap.Logger) (*deps, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DBPath = p
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d := &deps{cfg: cfg, store: st, closers: []func() error{st.Close}}

	repo, err := d.progressRepo(ctx)
	if err != nil {
		d.Close()
		return nil, err
	}
	reg := progress.NewRegistry(
		progress.WithRepository(repo),
		progress.WithThresholds(cfg.Thresholds),
		progress.WithLogger(log),
	)

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
	if err != nil {
		log.Warn("LLM provider not configured; AI features will be unavailable", zap.Error(err))
		provider = nil
	}

	d.tutor = tutor.New(buildCapabilities(provider, cfg, log), reg,
		tutor.WithLanguage(cfg.Language),
		tutor.WithCapabilityTimeout(cfg.CapabilityTimeout),
		tutor.WithLogger(log),
	)
	return d, nil
}

// progressRepo returns the configured persistence for learner progress;
// nil means in-memory only.
func (d *deps) progressRepo(ctx context.Context) (progress.Repository, error) {
	switch d.cfg.ProgressBackend {
	case config.BackendMemory:
		return nil, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     d.cfg.RedisAddr,
			Password: d.cfg.RedisPassword,
			DB:       d.cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", d.cfg.RedisAddr, err)
		}
		d.closers = append(d.closers, client.Close)
		return store.NewRedisProgressRepo(client, store.RedisProgressConfig{TTL: d.cfg.RedisTTL}), nil
	default:
		return d.store.ProgressRepo(), nil
	}
}

// buildCapabilities wires the LLM-backed capabilities around provider. With
// no provider only the static dictionary is available.
func buildCapabilities(provider llm.Provider, cfg *config.Config, log *zap.Logger) capability.Set {
	set := capability.Set{Dictionary: capability.DefaultStaticDictionary()}

	if cfg.TTS.Enabled() {
		speaker, err := capability.NewOpenAISpeakerFromKey(cfg.TTS.APIKey, cfg.TTS.BaseURL, capability.SpeakerConfig{
			Model: cfg.TTS.Model,
			Voice: cfg.TTS.Voice,
			Dir:   filepath.Clean(cfg.StaticDir),
		})
		if err != nil {
			log.Warn("pronunciation disabled", zap.Error(err))
		} else {
			set.Speaker = speaker
		}
	}

	if provider == nil {
		return set
	}

	lc := capability.DefaultLLMConfig()
	set.Grammar = capability.NewLLMGrammarChecker(provider, cfg.Language, lc)
	set.Dictionary = capability.ChainDictionary{
		capability.DefaultStaticDictionary(),
		capability.NewLLMDictionary(provider, cfg.Language, lc),
	}
	set.ToEnglish = capability.NewLLMTranslator(provider, "English", lc)
	set.ToBengali = capability.NewLLMTranslator(provider, "Bengali", lc)
	set.Explainer = capability.NewLLMExplainer(provider, cfg.Language, lc)
	set.Generator = capability.NewLLMGenerator(provider, lc)
	return set
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/dshills/tfreview/internal/annotate"
	"github.com/dshills/tfreview/internal/cache"
	"github.com/dshills/tfreview/internal/completion"
	"github.com/dshills/tfreview/internal/config"
	"github.com/dshills/tfreview/internal/pipeline"
	"github.com/dshills/tfreview/internal/providers"
	"github.com/dshills/tfreview/internal/review"
	"github.com/dshills/tfreview/internal/terminal"
	"github.com/dshills/tfreview/internal/tokens"
	"github.com/spf13/cobra"
)

// Shared run flags
var (
	flagProvider     string
	flagModel        string
	flagInput        string
	flagWorkingCopy  string
	flagReport       string
	flagForecastLog  string
	flagFormat       string
	flagLanguage     string
	flagKeywords     string
	flagBlockMatch   string
	flagRoles        string
	flagMaxTokens    int
	flagRules        string
	flagRedact       bool
	flagApproxTokens bool
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagInput, "input", "", "Original file to review (default inputs/main.tf)")
	cmd.Flags().StringVar(&flagWorkingCopy, "working-copy", "", "File to annotate, seeded from --input if missing (default recommit/main.tf)")
	cmd.Flags().StringVar(&flagReport, "report", "", "Report file, overwritten each run (default outputs/review_report.txt)")
	cmd.Flags().StringVar(&flagForecastLog, "forecast-log", "", "Append-only token forecast log (default outputs/tokenforecasts.log)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Report format (text, markdown, json)")
	cmd.Flags().StringVar(&flagLanguage, "language", "", "Language named in prompts (default Terraform)")
	cmd.Flags().StringVar(&flagKeywords, "keywords", "", "Block keywords, comma-separated (default resource,module,data)")
	cmd.Flags().StringVar(&flagBlockMatch, "block-match", "", "How keywords start a block: prefix (default) or word")
	cmd.Flags().StringVar(&flagRoles, "roles", "", "Review roles to run, comma-separated (default syntax,best-practices,optimization)")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Completion token cap per call (default none; anthropic uses 4096)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML guidelines file appended to review prompts")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Replace likely secrets before sending file text")
	cmd.Flags().BoolVar(&flagApproxTokens, "approx-tokens", false, "Estimate tokens by character count instead of the model tokenizer")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	set("provider", flagProvider)
	set("model", flagModel)
	set("format", flagFormat)
	set("language", flagLanguage)
	set("blockKeywords", flagKeywords)
	set("blockMatch", flagBlockMatch)
	set("roles", flagRoles)
	if flagMaxTokens > 0 {
		m["maxTokens"] = strconv.Itoa(flagMaxTokens)
	}
	set("rulesFile", flagRules)
	set("paths.input", flagInput)
	set("paths.workingCopy", flagWorkingCopy)
	set("paths.report", flagReport)
	set("paths.forecastLog", flagForecastLog)
	if flagRedact {
		m["privacy.redactSecrets"] = strconv.FormatBool(true)
	}
	return m
}

func newLogger() *terminal.Logger {
	return terminal.NewLogger(terminal.Options{Verbose: flagVerbose, NoColor: flagNoColor})
}

// loadConfig returns the effective, validated configuration. An unset model
// becomes the provider's default.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := reviewRoles(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg.WithModel(providers.DefaultModel), nil
}

// reviewRoles resolves the configured role names.
func reviewRoles(cfg config.Config) ([]review.Role, error) {
	roles, err := review.RolesByName(cfg.Roles)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return roles, nil
}

func newCounter(cfg config.Config, log *terminal.Logger) tokens.Counter {
	if flagApproxTokens {
		return tokens.Approx{}
	}
	tk, err := tokens.NewTiktoken(cfg.Tokenizer())
	if err != nil {
		log.Warnf("tokenizer unavailable, estimating by character count: %v", err)
		return tokens.Approx{}
	}
	return tk
}

func newRetryPolicy(cfg config.Config) (providers.RetryPolicy, error) {
	backoff, err := providers.BackoffByName(cfg.Retry.Backoff, cfg.BaseDelay())
	if err != nil {
		return providers.RetryPolicy{}, err
	}
	return providers.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     backoff,
		Retryable:   providers.IsRateLimit,
	}, nil
}

// newPipeline builds the provider, completion client and pipeline for cfg.
func newPipeline(cfg config.Config, log *terminal.Logger) (*pipeline.Pipeline, error) {
	provider, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	retry, err := newRetryPolicy(cfg)
	if err != nil {
		return nil, err
	}

	client, err := completion.New(completion.Options{
		Provider:  provider,
		Counter:   newCounter(cfg, log),
		Forecast:  tokens.Forecast{Path: cfg.Paths.ForecastLog},
		Retry:     retry,
		Cache:     c,
		Logger:    log,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	guidelines, err := review.LoadGuidelines(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	roles, err := reviewRoles(cfg)
	if err != nil {
		return nil, err
	}
	match, err := annotate.ParseMatch(cfg.BlockMatch)
	if err != nil {
		return nil, err
	}

	log.Debugf("provider %s, model %s", cfg.Provider, cfg.Model)
	return &pipeline.Pipeline{
		Generator: client,
		Paths: pipeline.Paths{
			Input:       cfg.Paths.Input,
			WorkingCopy: cfg.Paths.WorkingCopy,
			Report:      cfg.Paths.Report,
		},
		Format:     cfg.Format,
		Language:   cfg.Language,
		Keywords:   cfg.BlockKeywords,
		Match:      match,
		Roles:      roles,
		Redact:     cfg.Privacy.RedactSecrets,
		Guidelines: guidelines,
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		Version:    version,
		Logger:     log,
	}, nil
}

// fail logs err and sets the exit code for its class.
func fail(log *terminal.Logger, err error) {
	log.Errorf("%v", err)
	if providers.IsAuthError(err) {
		exitCode = ExitAuthError
		return
	}
	exitCode = ExitRuntimeError
}

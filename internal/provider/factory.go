package provider

import (
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/geobiz/internal/config"
	"github.com/sells-group/geobiz/pkg/anthropic"
	"github.com/sells-group/geobiz/pkg/gemini"
	"github.com/sells-group/geobiz/pkg/perplexity"
)

// New builds the provider selected by cfg.Provider.Name.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider.Name {
	case config.ProviderGemini, "":
		var opts []gemini.Option
		if cfg.Gemini.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Gemini.Model))
		}
		if cfg.Gemini.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.Gemini.BaseURL))
		}
		if cfg.Gemini.TimeoutSecs > 0 {
			opts = append(opts, gemini.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.Gemini.TimeoutSecs) * time.Second,
			}))
		}
		return NewGemini(gemini.NewClient(cfg.Gemini.Key, opts...), cfg.Gemini.Model), nil

	case config.ProviderAnthropic:
		client := anthropic.NewClient(cfg.Anthropic.Key, option.WithRequestTimeout(2*time.Minute))
		return NewAnthropic(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens), nil

	case config.ProviderPerplexity:
		var opts []perplexity.Option
		if cfg.Perplexity.BaseURL != "" {
			opts = append(opts, perplexity.WithBaseURL(cfg.Perplexity.BaseURL))
		}
		if cfg.Perplexity.Model != "" {
			opts = append(opts, perplexity.WithModel(cfg.Perplexity.Model))
		}
		return NewPerplexity(perplexity.NewClient(cfg.Perplexity.Key, opts...), cfg.Perplexity.Model), nil

	default:
		return nil, eris.Errorf("provider: unknown provider %q", cfg.Provider.Name)
	}
}

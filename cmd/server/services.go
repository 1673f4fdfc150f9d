package main

import (
	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/advisor"
	"codeberg.org/finpilot/server/internal/agent"
	"codeberg.org/finpilot/server/internal/analytics"
	"codeberg.org/finpilot/server/internal/config"
	"codeberg.org/finpilot/server/internal/llm"
	"codeberg.org/finpilot/server/internal/logger"
	"codeberg.org/finpilot/server/internal/retriever"
)

// creates the retriever, completer and the services built on them
func InitializeServices(cfg *config.Config, store *records.Store) *Services {
	generator, err := llm.NewTextGenerator()
	if err != nil {
		// keep serving: every completion falls back to its fixed text
		logger.Warn("language model unavailable, serving fallbacks", "error", err)
		generator = llm.Unavailable(err)
	}

	completer := llm.NewCompleter(generator, cfg.LLMTimeout)
	retrieverClient := retriever.NewClientWithConfig(store, &retriever.RetrieverConfig{TopK: cfg.TopK})

	logger.Info("services initialized", "model", completer.Model(), "top_k", retrieverClient.TopK())

	return &Services{
		Completer: completer,
		Retriever: retrieverClient,
		Agent:     agent.New(retrieverClient, completer),
		Advisor:   advisor.New(retrieverClient, completer),
		Analytics: analytics.New(store, completer),
	}
}

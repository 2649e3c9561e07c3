package cmd

import (
	"fmt"
	"os"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/registry"
	"github.com/lintgate/lintgate/internal/runner"
	"github.com/lintgate/lintgate/internal/source"
)

// runGate executes the full inspection battery. The returned bool is the
// overall success flag: false iff a configured threshold was exceeded.
func runGate() (bool, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return false, fmt.Errorf("error loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	// Process-lifetime document cache, created here and threaded through.
	cache, err := source.NewDocumentCache(source.DefaultCacheSize)
	if err != nil {
		return false, fmt.Errorf("error creating document cache: %w", err)
	}

	opts := runner.Options{
		UseBaseline:    useBaseline,
		CreateBaseline: createBaseline,
		BaselinePath:   baselinePath,
	}

	orch := runner.New(cfg, opts, registry.Default(), cache, logger, os.Stdout)
	result, err := orch.Run()
	if err != nil {
		return false, err
	}

	if !result.OK {
		logger.Error("finding threshold exceeded, failing the build",
			"findings", result.TotalFindings)
	}
	return result.OK, nil
}

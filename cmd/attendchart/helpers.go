package main

import (
	"fmt"

	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/config"
	"github.com/at-ishikawa/attendchart/internal/series"
	"github.com/at-ishikawa/attendchart/internal/stats"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newAssembler returns an assembler over the statistics API and the function closing its client.
func newAssembler(cfg *config.Config) (*series.Assembler, func() error) {
	client := stats.NewClient(stats.Config{
		BaseURL:     cfg.API.BaseURL,
		SuccessCode: cfg.API.SuccessCode,
		Timeout:     cfg.API.Timeout(),
	})
	return series.NewAssembler(client, cfg.API.Concurrency), client.Close
}

func chartSize(cfg *config.Config) chart.Size {
	return chart.Size{
		Width:  cfg.Chart.WidthInches,
		Height: cfg.Chart.HeightInches,
	}
}

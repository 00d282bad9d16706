package main

import (
	"fmt"

	"github.com/skawahara/tango/internal/config"
	"github.com/skawahara/tango/internal/store"
	"github.com/skawahara/tango/internal/vocab"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, *vocab.DBRepository) {
	st := store.New(cfg.Store.SnapshotPath)
	return st, vocab.NewDBRepository(st)
}

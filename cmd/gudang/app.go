package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/internal/config"
	"github.com/petasbytes/gudang-bot/internal/dispatcher"
	"github.com/petasbytes/gudang-bot/store"
	"github.com/petasbytes/gudang-bot/warehouse"
)

// openWarehouse loads both records and logs entries dropped while loading.
func openWarehouse(cfg *config.Config, log *zap.Logger) (*warehouse.Catalog, *warehouse.Ledger, error) {
	s, err := store.Open(cfg.Storage.DataDir,
		store.WithCatalogFile(cfg.Storage.CatalogFile),
		store.WithLedgerFile(cfg.Storage.LedgerFile))
	if err != nil {
		return nil, nil, err
	}
	st, report, err := warehouse.Load(s)
	if err != nil {
		return nil, nil, fmt.Errorf("load warehouse from %s: %w", s.Dir(), err)
	}
	if report.DroppedItems > 0 || report.DroppedEntries > 0 {
		log.Warn("dropped invalid stored entries",
			zap.Int("items", report.DroppedItems),
			zap.Int("ledger_entries", report.DroppedEntries))
	}
	catalog, ledger := warehouse.NewCatalog(st), warehouse.NewLedger(st)
	log.Info("warehouse loaded",
		zap.String("data_dir", s.Dir()),
		zap.Int("items", catalog.Len()),
		zap.Int("stocked", ledger.Len()))
	return catalog, ledger, nil
}

func newSession(cfg *config.Config) (*discordgo.Session, error) {
	if err := cfg.ValidateDiscord(); err != nil {
		return nil, err
	}
	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

func renderer(cfg *config.Config) dispatcher.Renderer {
	return dispatcher.Renderer{MaxRunes: cfg.Reply.MaxRunes, Marker: cfg.Reply.TruncationMarker}
}

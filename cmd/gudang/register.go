package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/internal/discord"
	"github.com/petasbytes/gudang-bot/internal/dispatcher"
)

func runRegister(cmd *cobra.Command, _ []string) error {
	catalog, ledger, err := openWarehouse(cfg, logger)
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	registrar := discord.NewRegistrar(session, cfg.Discord.ApplicationID, cfg.Discord.GuildID, logger)
	d := dispatcher.New(catalog, ledger, registrar, dispatcher.WithLogger(logger))
	if err := d.Declare(ctx); err != nil {
		return err
	}

	scope := "global"
	if cfg.Discord.GuildID != "" {
		scope = "guild " + cfg.Discord.GuildID
	}
	logger.Info("slash commands registered", zap.String("scope", scope), zap.Int("items", catalog.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "Registered %d commands (%s) with %d items.\n", len(d.Definitions()), scope, catalog.Len())
	return nil
}

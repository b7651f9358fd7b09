package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/commands"
)

// CommandOverwriter is the part of *discordgo.Session the Registrar needs.
type CommandOverwriter interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Registrar declares the full command set with one bulk overwrite, which makes
// repeated declarations idempotent.
type Registrar struct {
	api     CommandOverwriter
	appID   string
	guildID string
	log     *zap.Logger
}

// NewRegistrar returns a Registrar for the application. An empty guildID
// declares global commands.
func NewRegistrar(api CommandOverwriter, appID, guildID string, log *zap.Logger) *Registrar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registrar{api: api, appID: appID, guildID: guildID, log: log}
}

// Declare replaces the application's commands with defs.
func (r *Registrar) Declare(ctx context.Context, defs []commands.Definition) error {
	cmds, err := ApplicationCommands(defs)
	if err != nil {
		return err
	}
	created, err := r.api.ApplicationCommandBulkOverwrite(r.appID, r.guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	r.log.Debug("application commands overwritten",
		zap.String("guild_id", r.guildID),
		zap.Int("commands", len(created)))
	return nil
}

package discord

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/commands"
	"github.com/petasbytes/gudang-bot/internal/dispatcher"
)

// Dispatcher is what the Handler forwards commands to.
type Dispatcher interface {
	Handle(ctx context.Context, inv dispatcher.Invocation) dispatcher.Reply
	ItemChoices(query string, limit int) []string
}

// Responder is the part of *discordgo.Session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

const (
	invalidArgsReply   = "Argumen perintah tidak valid."
	unknownCommandText = "Perintah tidak dikenal."
)

// editTimeout bounds delivery of the final reply, independent of how long the
// command itself took.
const editTimeout = 10 * time.Second

// Handler answers slash command and autocomplete interactions.
type Handler struct {
	d       Dispatcher
	log     *zap.Logger
	timeout time.Duration
}

// NewHandler returns a Handler forwarding to d.
func NewHandler(d Dispatcher, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{d: d, log: log, timeout: 30 * time.Second}
}

// OnInteraction is registered with (*discordgo.Session).AddHandler.
func (h *Handler) OnInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.Serve(ctx, s, ic.Interaction)
}

// Serve answers one interaction through r. Commands that reach the
// dispatcher are acknowledged with a deferred response first, because Discord
// drops interactions not answered within three seconds and a catalog change
// waits on the schema refresh. The reply then replaces the deferred message.
func (h *Handler) Serve(ctx context.Context, r Responder, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.command(ctx, r, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		h.respond(ctx, r, i, h.autocomplete(i))
	}
}

func (h *Handler) command(ctx context.Context, r Responder, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	kind, ok := commands.LookupPlatformName(data.Name)
	if !ok {
		h.log.Warn("unknown command", zap.String("name", data.Name))
		h.respond(ctx, r, i, message(unknownCommandText, true))
		return
	}

	cmd, err := decode(kind, data.Options)
	if err != nil {
		h.log.Debug("invalid command arguments",
			zap.Stringer("command", kind),
			zap.Error(err))
		h.respond(ctx, r, i, message(invalidArgsReply, true))
		return
	}

	// Without an acknowledgement the reply could never be delivered, so the
	// command is not run.
	deferred := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if !h.respond(ctx, r, i, deferred) {
		return
	}

	reply := h.d.Handle(ctx, dispatcher.Invocation{
		ID:      i.ID,
		UserID:  userID(i),
		Command: cmd,
	})

	editCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), editTimeout)
	defer cancel()
	text := reply.Text
	if _, err := r.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &text}, discordgo.WithContext(editCtx)); err != nil {
		h.log.Error("interaction reply edit failed",
			zap.String("interaction_id", i.ID),
			zap.Stringer("command", kind),
			zap.Error(err))
	}
}

func (h *Handler) respond(ctx context.Context, r Responder, i *discordgo.Interaction, resp *discordgo.InteractionResponse) bool {
	if err := r.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		h.log.Error("interaction response failed",
			zap.String("interaction_id", i.ID),
			zap.Error(err))
		return false
	}
	return true
}

func (h *Handler) autocomplete(i *discordgo.Interaction) *discordgo.InteractionResponse {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused && opt.Name == commands.ItemProperty && opt.Type == discordgo.ApplicationCommandOptionString {
			query = opt.StringValue()
		}
	}

	names := h.d.ItemChoices(query, MaxChoices)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}
}

// decode re-encodes the interaction options as JSON so commands.Parse can
// validate them against the command's input type.
func decode(kind commands.Kind, opts []*discordgo.ApplicationCommandInteractionDataOption) (commands.Command, error) {
	args := make(map[string]any, len(opts))
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionInteger:
			args[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionString:
			args[opt.Name] = opt.StringValue()
		default:
			args[opt.Name] = opt.Value
		}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return commands.Parse(kind, raw)
}

func userID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func message(text string, ephemeral bool) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{Content: text}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

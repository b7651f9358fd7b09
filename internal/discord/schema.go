package discord

import (
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/invopop/jsonschema"

	"github.com/petasbytes/gudang-bot/commands"
)

// MaxChoices is the number of fixed choices Discord accepts per option.
// Larger choice lists are served through autocomplete instead.
const MaxChoices = 25

// ApplicationCommands converts command definitions into Discord slash commands.
// Properties keep their schema order; required properties come first because
// Discord rejects optional options declared before required ones.
func ApplicationCommands(defs []commands.Definition) ([]*discordgo.ApplicationCommand, error) {
	out := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, def := range defs {
		opts, err := options(def.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", def.Name, err)
		}
		out = append(out, &discordgo.ApplicationCommand{
			Type:        discordgo.ChatApplicationCommand,
			Name:        def.Name,
			Description: def.Description,
			Options:     opts,
		})
	}
	return out, nil
}

func options(schema *jsonschema.Schema) ([]*discordgo.ApplicationCommandOption, error) {
	if schema == nil || schema.Properties == nil {
		return nil, nil
	}
	var required, optional []*discordgo.ApplicationCommandOption
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		opt, err := option(pair.Key, pair.Value)
		if err != nil {
			return nil, err
		}
		if slices.Contains(schema.Required, pair.Key) {
			opt.Required = true
			required = append(required, opt)
		} else {
			optional = append(optional, opt)
		}
	}
	return append(required, optional...), nil
}

func option(name string, prop *jsonschema.Schema) (*discordgo.ApplicationCommandOption, error) {
	opt := &discordgo.ApplicationCommandOption{
		Name:        name,
		Description: prop.Description,
	}
	if opt.Description == "" {
		opt.Description = name
	}

	switch prop.Type {
	case "string":
		opt.Type = discordgo.ApplicationCommandOptionString
		if prop.MinLength != nil {
			n := int(*prop.MinLength)
			opt.MinLength = &n
		}
		if prop.MaxLength != nil {
			opt.MaxLength = int(*prop.MaxLength)
		}
	case "integer":
		opt.Type = discordgo.ApplicationCommandOptionInteger
		if prop.Minimum != "" {
			v, err := prop.Minimum.Float64()
			if err != nil {
				return nil, fmt.Errorf("option %s: minimum: %w", name, err)
			}
			opt.MinValue = &v
		}
	default:
		return nil, fmt.Errorf("option %s: unsupported type %q", name, prop.Type)
	}

	if prop.Enum == nil {
		return opt, nil
	}
	if len(prop.Enum) > MaxChoices {
		opt.Autocomplete = true
		return opt, nil
	}
	for _, v := range prop.Enum {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprint(v),
			Value: v,
		})
	}
	return opt, nil
}

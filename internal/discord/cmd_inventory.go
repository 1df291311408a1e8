package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// InventoryCommand returns the inventory command definition and handler
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "inventory",
		Description: "View your active character's inventory",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)

		view, err := bot.Client.GetInventory(user.ID)
		if err != nil {
			slog.Error("Failed to get inventory", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s's Inventory", view.Character),
			Description: formatInventory(view.Inventory),
			Color:       ColorPurple,
		})
	}

	return cmd, handler
}

// AdjustCommand returns the adjust command definition and handler. It covers
// the session bookkeeping flow where a keeper grants or spends resources.
func AdjustCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "adjust",
		Description: "Add or remove resources on your active character",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "action",
				Description: "Add or remove",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Add", Value: "add"},
					{Name: "Remove", Value: "remove"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "resource",
				Description: "Resource kind",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)
		opts := optionMap(i)

		result, err := bot.Client.AdjustInventory(user.ID,
			opts["action"].StringValue(),
			opts["resource"].StringValue(),
			int(opts["amount"].IntValue()))
		if err != nil {
			slog.Error("Failed to adjust inventory", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title: "Inventory Updated",
			Description: fmt.Sprintf("**%s** now has **%d** %s.",
				result.Character, result.Quantity, result.Resource),
			Color: ColorGreen,
		})
	}

	return cmd, handler
}

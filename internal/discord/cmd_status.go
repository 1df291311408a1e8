package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// StatusCommand returns the status command definition and handler
func StatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "status",
		Description: "Set your active character's status",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "status",
				Description: "New status",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Idle", Value: string(domain.StatusIdle)},
					{Name: "Resting", Value: string(domain.StatusResting)},
					{Name: "Exploring", Value: string(domain.StatusExploring)},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)
		status := optionMap(i)["status"].StringValue()

		result, err := bot.Client.SetStatus(user.ID, status)
		if err != nil {
			slog.Error("Failed to set status", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		description := fmt.Sprintf("**%s** is now **%s**.", result.Character, titleCaser.String(string(result.Status)))
		if result.Status == domain.StatusResting {
			description += fmt.Sprintf("\nRations left: **%d**", result.RationsLeft)
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Status Changed",
			Description: description,
			Color:       ColorBlue,
		})
	}

	return cmd, handler
}

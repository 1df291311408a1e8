package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

func transferOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "resource",
			Description: "Resource kind",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Rations", Value: domain.ResourceRations},
				{Name: "Material", Value: domain.ResourceMaterial},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "How many",
			Required:    true,
		},
	}
}

// DepositCommand returns the deposit command definition and handler
func DepositCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "deposit",
		Description: "Deposit resources into the Farfinder's hold",
		Options:     transferOptions(),
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		handleTransfer(s, i, bot, bot.Client.Deposit, "Deposited")
	}

	return cmd, handler
}

// TakeCommand returns the take command definition and handler
func TakeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "take",
		Description: "Take resources from the Farfinder's hold",
		Options:     transferOptions(),
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		handleTransfer(s, i, bot, bot.Client.Take, "Took")
	}

	return cmd, handler
}

func handleTransfer(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot,
	op func(discordID, resource string, amount int) (*domain.Transfer, error), verb string) {
	if !deferResponse(s, i) {
		return
	}
	user := interactionUser(i)
	opts := optionMap(i)

	result, err := op(user.ID, opts["resource"].StringValue(), int(opts["amount"].IntValue()))
	if err != nil {
		slog.Error("Transfer failed", "error", err)
		respondFriendlyError(s, i, err)
		return
	}

	sendEmbed(s, i, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %d %s", verb, result.Amount, result.Resource),
		Description: fmt.Sprintf("**%s** now carries **%d**, the hold has **%d**.",
			result.Character, result.CharacterAfter, result.PoolAfter),
		Color: ColorOrange,
	})
}

// FarfinderCommand returns the farfinder command definition and handler
func FarfinderCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "farfinder",
		Description: "View the Farfinder's shared hold",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}

		pool, err := bot.Client.GetPool()
		if err != nil {
			slog.Error("Failed to get pool", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "The Farfinder's Hold",
			Description: formatInventory(pool),
			Color:       ColorOrange,
		})
	}

	return cmd, handler
}

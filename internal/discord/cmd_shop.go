package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ShopCommand returns the shop command definition and handler
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Browse the expedition shop",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}

		items, err := bot.Client.GetShop()
		if err != nil {
			slog.Error("Failed to get shop", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		var lines []string
		for n, item := range items {
			lines = append(lines, fmt.Sprintf("%d. **%s** — %d tokens (%d in stock)",
				n+1, titleCaser.String(item.Name), item.Price, item.Stock))
		}
		description := "The shelves are bare."
		if len(lines) > 0 {
			description = strings.Join(lines, "\n")
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Expedition Shop",
			Description: description,
			Color:       ColorOrange,
		})
	}

	return cmd, handler
}

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Buy an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "index",
				Description: "Item number from /shop",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
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

		receipt, err := bot.Client.BuyItem(user.ID,
			int(opts["index"].IntValue()),
			int(opts["quantity"].IntValue()))
		if err != nil {
			slog.Error("Failed to buy item", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title: "Purchase Complete",
			Description: fmt.Sprintf("**%s** bought %d x **%s** for %d tokens.\nTokens left: **%d** · Shop stock: **%d**",
				receipt.Character, receipt.Quantity, titleCaser.String(receipt.Item),
				receipt.Spent, receipt.TokensLeft, receipt.StockLeft),
			Color: ColorGreen,
		})
	}

	return cmd, handler
}

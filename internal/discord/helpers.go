package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

const embedFooter = "FarfinderBot"

// Embed colors
const (
	ColorGreen  = 0x2ecc71
	ColorBlue   = 0x3498db
	ColorPurple = 0x9b59b6
	ColorOrange = 0xe67e22
)

var titleCaser = cases.Title(language.English)

// interactionUser resolves the invoking user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// deferResponse acknowledges the interaction so slower API calls don't hit
// the 3 second interaction deadline.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// sendEmbed sends an embed reply, logging send failures internally.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	embed.Footer = &discordgo.MessageEmbedFooter{Text: embedFooter}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// respondError sends a plain error message.
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError maps a core API error to a player-facing message.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, domain.ErrMsgNoActiveCharacter):
		return MsgNoActiveCharacter
	case strings.Contains(msg, domain.ErrMsgCharacterNotFound):
		return MsgCharacterNotFound
	case strings.Contains(msg, domain.ErrMsgAlreadyExists):
		return MsgAlreadyExists
	case strings.Contains(msg, domain.ErrMsgInsufficientFunds):
		return MsgInsufficientFunds
	case strings.Contains(msg, domain.ErrMsgInsufficientStock):
		return MsgOutOfStock
	case strings.Contains(msg, domain.ErrMsgInsufficientBalance):
		return MsgNotEnoughResources
	case strings.Contains(msg, domain.ErrMsgInvalidResource):
		return MsgUnknownResource
	case strings.Contains(msg, domain.ErrMsgInvalidIndex):
		return "🏪 **No Such Item**\nCheck the shop listing for valid numbers."
	case strings.Contains(msg, domain.ErrMsgPersistence):
		return MsgGenericError
	default:
		return "❌ " + msg
	}
}

// formatInventory renders an inventory as sorted "**Name** x3" lines.
func formatInventory(inv domain.Inventory) string {
	if len(inv) == 0 {
		return "Nothing but lint."
	}

	kinds := make([]string, 0, len(inv))
	for kind := range inv {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var lines []string
	for _, kind := range kinds {
		lines = append(lines, fmt.Sprintf("**%s** x%d", titleCaser.String(kind), inv[kind]))
	}
	return strings.Join(lines, "\n")
}

// optionMap indexes the interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

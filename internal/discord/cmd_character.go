package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// RegisterCommand returns the register command definition and handler
func RegisterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "register",
		Description: "Register a new character",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Character name",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "class",
				Description: "Character class",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "species",
				Description: "Character species",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "background",
				Description: "Character background",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "Short description",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)
		opts := optionMap(i)

		var description string
		if opt, ok := opts["description"]; ok {
			description = opt.StringValue()
		}

		profile, err := bot.Client.RegisterCharacter(user.ID,
			opts["name"].StringValue(),
			opts["class"].StringValue(),
			opts["species"].StringValue(),
			opts["background"].StringValue(),
			description)
		if err != nil {
			slog.Error("Failed to register character", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title: fmt.Sprintf("Welcome, %s!", profile.Name),
			Description: fmt.Sprintf("Level %d %s %s (%s)",
				profile.Character.Level,
				titleCaser.String(profile.Character.Species),
				titleCaser.String(profile.Character.Class),
				profile.Character.Background),
			Color: ColorGreen,
		})
	}

	return cmd, handler
}

// SwitchCommand returns the switch_character command definition and handler
func SwitchCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "switch_character",
		Description: "Switch your active character",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Character to activate",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)
		name := optionMap(i)["name"].StringValue()

		if err := bot.Client.SwitchCharacter(user.ID, name); err != nil {
			slog.Error("Failed to switch character", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		// Nickname follows the active character.
		bot.SetNickname(user.ID, name)

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Character Switched",
			Description: fmt.Sprintf("You are now playing as **%s**.", name),
			Color:       ColorBlue,
		})
	}

	return cmd, handler
}

// ProfileCommand returns the profile command definition and handler
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "View your active character",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)

		profile, err := bot.Client.GetProfile(user.ID)
		if err != nil {
			slog.Error("Failed to get profile", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		c := profile.Character
		fields := []*discordgo.MessageEmbedField{
			{Name: "Class", Value: titleCaser.String(c.Class), Inline: true},
			{Name: "Species", Value: titleCaser.String(c.Species), Inline: true},
			{Name: "Background", Value: titleCaser.String(c.Background), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d", c.Level), Inline: true},
			{Name: "Status", Value: titleCaser.String(string(c.Status)), Inline: true},
		}
		if c.Description != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: "About", Value: c.Description})
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:  profile.Name,
			Fields: fields,
			Color:  ColorPurple,
		})
	}

	return cmd, handler
}

// MyCharactersCommand returns the my_characters command definition and handler
func MyCharactersCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "my_characters",
		Description: "List your characters",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, bot *Bot) {
		if !deferResponse(s, i) {
			return
		}
		user := interactionUser(i)

		list, err := bot.Client.ListCharacters(user.ID)
		if err != nil {
			slog.Error("Failed to list characters", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		var lines []string
		if list.Active != "" {
			lines = append(lines, fmt.Sprintf("**%s** (active)", list.Active))
		}
		for _, name := range list.Others {
			lines = append(lines, name)
		}

		description := "You haven't registered any characters yet."
		if len(lines) > 0 {
			description = strings.Join(lines, "\n")
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s's Characters", user.Username),
			Description: description,
			Color:       ColorBlue,
		})
	}

	return cmd, handler
}

// EditCharacterCommand returns the edit_character command definition and handler
func EditCharacterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "edit_character",
		Description: "Edit an attribute of your active character",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "field",
				Description: "Attribute to change",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Class", Value: domain.AttrClass},
					{Name: "Species", Value: domain.AttrSpecies},
					{Name: "Background", Value: domain.AttrBackground},
					{Name: "Level", Value: domain.AttrLevel},
					{Name: "Description", Value: domain.AttrDescription},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "value",
				Description: "New value",
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
		field := opts["field"].StringValue()
		value := opts["value"].StringValue()

		profile, err := bot.Client.SetAttribute(user.ID, field, value)
		if err != nil {
			slog.Error("Failed to set attribute", "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		sendEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "Character Updated",
			Description: fmt.Sprintf("**%s**'s %s is now **%s**.", profile.Name, field, value),
			Color:       ColorGreen,
		})
	}

	return cmd, handler
}

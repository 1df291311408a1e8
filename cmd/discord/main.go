package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/lunareth/FarfinderBot_Go/internal/discord"
	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Default values for optional configuration
const (
	DefaultWebhookPort = "8082"
	DefaultAPIURL      = "http://localhost:8080"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load .env file
	_ = godotenv.Load()

	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Webhook server for status announcements from the core
	webhookPort := os.Getenv("DISCORD_WEBHOOK_PORT")
	if webhookPort == "" {
		webhookPort = DefaultWebhookPort
	}
	httpServer := discord.NewHTTPServer(webhookPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	registerCommands(bot, commandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates Discord bot configuration from environment
// variables. Returns error if required variables are missing.
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}
	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return discord.Config{
		Token:       token,
		AppID:       appID,
		GuildID:     os.Getenv("DISCORD_GUILD_ID"),
		APIURL:      apiURL,
		APIKey:      os.Getenv("API_KEY"),
		StatusRoles: loadStatusRoles(),
	}, nil
}

// loadStatusRoles maps each status to its guild role ID. Unset entries
// disable the swap for that status.
func loadStatusRoles() map[string]string {
	roles := make(map[string]string)
	for status, env := range map[domain.Status]string{
		domain.StatusIdle:      "DISCORD_ROLE_IDLE",
		domain.StatusResting:   "DISCORD_ROLE_RESTING",
		domain.StatusExploring: "DISCORD_ROLE_EXPLORING",
	} {
		if id := strings.TrimSpace(os.Getenv(env)); id != "" {
			roles[string(status)] = id
		}
	}
	return roles
}

// commandFactories lists every slash command the bot registers.
func commandFactories() []CommandFactory {
	return []CommandFactory{
		discord.RegisterCommand,
		discord.SwitchCommand,
		discord.ProfileCommand,
		discord.MyCharactersCommand,
		discord.EditCharacterCommand,
		discord.StatusCommand,
		discord.InventoryCommand,
		discord.AdjustCommand,
		discord.DepositCommand,
		discord.TakeCommand,
		discord.FarfinderCommand,
		discord.ShopCommand,
		discord.BuyCommand,
	}
}

func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}

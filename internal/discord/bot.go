package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	GuildID  string
	Registry *CommandRegistry

	// StatusRoles maps a status name to the guild role granted while a
	// character holds it. Missing entries disable the swap for that status.
	StatusRoles map[string]string
}

// Config holds the bot configuration
type Config struct {
	Token       string
	AppID       string
	GuildID     string
	APIURL      string
	APIKey      string
	StatusRoles map[string]string
}

// New creates a new Discord bot
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return &Bot{
		Session:     s,
		Client:      NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:       cfg.AppID,
		GuildID:     cfg.GuildID,
		Registry:    NewCommandRegistry(),
		StatusRoles: cfg.StatusRoles,
	}, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.Session.Close()
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b)
	}
}

// SetNickname renames the member to their active character's name. Fails
// quietly for guild owners and missing permissions; the switch itself has
// already succeeded.
func (b *Bot) SetNickname(userID, nickname string) {
	if b.GuildID == "" {
		return
	}
	if err := b.Session.GuildMemberNickname(b.GuildID, userID, nickname); err != nil {
		slog.Warn("Failed to update nickname", "user_id", userID, "error", err)
	}
}

// ApplyStatusRole grants the role mapped to status and removes the roles of
// the other statuses.
func (b *Bot) ApplyStatusRole(userID, status string) error {
	if b.GuildID == "" || len(b.StatusRoles) == 0 {
		return nil
	}

	for name, roleID := range b.StatusRoles {
		if name == status {
			continue
		}
		if err := b.Session.GuildMemberRoleRemove(b.GuildID, userID, roleID); err != nil {
			slog.Warn("Failed to remove status role", "user_id", userID, "status", name, "error", err)
		}
	}

	roleID, ok := b.StatusRoles[status]
	if !ok {
		return nil
	}
	if err := b.Session.GuildMemberRoleAdd(b.GuildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add status role: %w", err)
	}
	return nil
}

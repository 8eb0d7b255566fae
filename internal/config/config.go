package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot.
type Config struct {
	App       AppConfig
	Discord   DiscordConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Lifecycle LifecycleConfig
	Activity  ActivityConfig
}

// AppConfig controls the operational HTTP surface.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// DiscordConfig holds gateway credentials and the static id surface.
type DiscordConfig struct {
	Token         string
	GuildID       string
	CommandPrefix string

	WelcomeChannelID string
	SupportChannelID string
	ReviewerRoleID   string

	MinecraftAdminPanelChannelID  string
	MinecraftAdminReviewChannelID string
	DiscordAdminPanelChannelID    string
	DiscordAdminReviewChannelID   string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// LifecycleConfig controls review-item timing behavior.
type LifecycleConfig struct {
	// Retention is how long a closed workspace stays around before the
	// archival worker deletes it.
	Retention time.Duration
	// SelectTimeout bounds how long a category selection menu stays valid.
	SelectTimeout time.Duration
	// ArchivePollInterval is how often the archival worker scans for due
	// workspaces.
	ArchivePollInterval time.Duration
}

// ActivityConfig controls the idle-activity monitor.
type ActivityConfig struct {
	ChannelID string

	CheckInterval time.Duration
	IdleThreshold time.Duration

	ReactorMinInterval time.Duration
	ReactorMaxInterval time.Duration
	StartupDelayMin    time.Duration
	StartupDelayMax    time.Duration

	ReplyChance        float64
	ReactChance        float64
	ReactionPassChance float64

	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration

	HistoryDepth int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "community-bot"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8080"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Discord: DiscordConfig{
			Token:                         token,
			GuildID:                       getEnv("DISCORD_GUILD_ID", ""),
			CommandPrefix:                 getEnv("BOT_COMMAND_PREFIX", "!"),
			WelcomeChannelID:              getEnv("WELCOME_CHANNEL_ID", ""),
			SupportChannelID:              getEnv("SUPPORT_CHANNEL_ID", ""),
			ReviewerRoleID:                getEnv("SUPPORT_ROLE_ID", ""),
			MinecraftAdminPanelChannelID:  getEnv("MINECRAFT_ADMIN_PANEL_CHANNEL_ID", ""),
			MinecraftAdminReviewChannelID: getEnv("MINECRAFT_ADMIN_REVIEW_CHANNEL_ID", ""),
			DiscordAdminPanelChannelID:    getEnv("DISCORD_ADMIN_PANEL_CHANNEL_ID", ""),
			DiscordAdminReviewChannelID:   getEnv("DISCORD_ADMIN_REVIEW_CHANNEL_ID", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Lifecycle: LifecycleConfig{
			Retention:           getEnvAsDuration("TICKET_RETENTION", 24*time.Hour),
			SelectTimeout:       getEnvAsDuration("CATEGORY_SELECT_TIMEOUT", 5*time.Minute),
			ArchivePollInterval: getEnvAsDuration("ARCHIVE_POLL_INTERVAL", time.Minute),
		},
		Activity: ActivityConfig{
			ChannelID:          getEnv("ACTIVITY_CHANNEL_ID", ""),
			CheckInterval:      getEnvAsDuration("ACTIVITY_CHECK_INTERVAL", 5*time.Minute),
			IdleThreshold:      getEnvAsDuration("ACTIVITY_IDLE_THRESHOLD", 30*time.Minute),
			ReactorMinInterval: getEnvAsDuration("ACTIVITY_REACTOR_MIN_INTERVAL", 10*time.Minute),
			ReactorMaxInterval: getEnvAsDuration("ACTIVITY_REACTOR_MAX_INTERVAL", 30*time.Minute),
			StartupDelayMin:    getEnvAsDuration("ACTIVITY_STARTUP_DELAY_MIN", time.Minute),
			StartupDelayMax:    getEnvAsDuration("ACTIVITY_STARTUP_DELAY_MAX", 5*time.Minute),
			ReplyChance:        getEnvAsFloat("ACTIVITY_REPLY_CHANCE", 0.15),
			ReactChance:        getEnvAsFloat("ACTIVITY_REACT_CHANCE", 0.25),
			ReactionPassChance: getEnvAsFloat("ACTIVITY_REACTION_PASS_CHANCE", 0.30),
			ReplyDelayMin:      getEnvAsDuration("ACTIVITY_REPLY_DELAY_MIN", 2*time.Second),
			ReplyDelayMax:      getEnvAsDuration("ACTIVITY_REPLY_DELAY_MAX", 8*time.Second),
			HistoryDepth:       getEnvAsInt("ACTIVITY_HISTORY_DEPTH", 5),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

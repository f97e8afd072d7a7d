package config

import (
	"errors"
	"math/rand"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment (optionally
// seeded from a .env file). OWNER_IDS is ordered: the first entry is the
// primary owner that receives join reports and snapshot backups.
type Config struct {
	BotToken        string   `env:"BOT_TOKEN,required"`
	OwnerIDs        []string `env:"OWNER_IDS" envSeparator:","`
	ChannelUsername string   `env:"CHANNEL_USERNAME"`
	ChannelURL      string   `env:"CHANNEL_URL"`
	Developer       string   `env:"DEVELOPER" envDefault:"@ku_kaii"`
	Version         string   `env:"VERSION" envDefault:"1.0.0"`
	MenuImages      []string `env:"MENU_IMAGES" envSeparator:","`

	DataFile  string `env:"DATA_FILE" envDefault:"data.json"`
	BackupDir string `env:"BACKUP_DIR" envDefault:"backup"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PostgresDSN string `env:"POSTGRES_DSN"`
}

// Load reads the optional .env file at path, then parses the environment.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if len(cfg.OwnerIDs) == 0 {
		return nil, errors.New("config: OWNER_IDS must list at least one owner")
	}
	return cfg, nil
}

// PrimaryOwner returns the configured report recipient.
func (c *Config) PrimaryOwner() string {
	return c.OwnerIDs[0]
}

func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// RandomMenuImage picks one of the rotating menu images, empty when none are
// configured.
func (c *Config) RandomMenuImage() string {
	if len(c.MenuImages) == 0 {
		return ""
	}
	return c.MenuImages[rand.Intn(len(c.MenuImages))]
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	mb "github.com/saeidalz13/battlesea/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort      int           = 9191
	defaultLogLevel  string        = "info"
	defaultShotDelay time.Duration = time.Second
)

type Config struct {
	Stage       string
	Port        int
	DatabaseURL string
	LogLevel    string
	Seed        int64
	ShotDelay   time.Duration
	RulesFile   string
	Rules       mb.Rules
}

// Load reads the environment. Outside prod the given env files (".env" by
// default) are loaded first; missing files are fine.
func Load(envFiles ...string) (Config, error) {
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = StageDev
	}
	if stage != StageProd && stage != StageDev {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", stage)
	}

	if stage != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load env file %s: %w", f, err)
			}
		}
	}

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("SHOT_DELAY", defaultShotDelay)
	v.SetDefault("SEED", 0)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RULES_FILE", "")
	v.AutomaticEnv()

	cfg := Config{
		Stage:       stage,
		Port:        v.GetInt("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Seed:        v.GetInt64("SEED"),
		ShotDelay:   v.GetDuration("SHOT_DELAY"),
		RulesFile:   v.GetString("RULES_FILE"),
	}
	if cfg.Port <= 0 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	rules := mb.DefaultRules()
	if cfg.RulesFile != "" {
		r, err := LoadRules(cfg.RulesFile)
		if err != nil {
			return Config{}, err
		}
		rules = r
	}
	cfg.Rules = rules
	return cfg, nil
}

// LoadRules overlays the YAML file at path on the default rules.
func LoadRules(path string) (mb.Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return mb.Rules{}, err
	}

	rules := mb.DefaultRules()
	if err := yaml.Unmarshal(b, &rules); err != nil {
		return mb.Rules{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return mb.Rules{}, err
	}
	return rules, nil
}

package appconfig

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"ipd-go/dilemma"
)

var ErrInvalidConfig = errors.New("invalid config")

type PayoffConfig struct {
	Temptation float64 `yaml:"temptation" env:"IPD_PAYOFF_TEMPTATION" env-default:"5"`
	Reward     float64 `yaml:"reward" env:"IPD_PAYOFF_REWARD" env-default:"3"`
	Punishment float64 `yaml:"punishment" env:"IPD_PAYOFF_PUNISHMENT" env-default:"1"`
	Sucker     float64 `yaml:"sucker" env:"IPD_PAYOFF_SUCKER" env-default:"0"`
}

type OutputConfig struct {
	StatsPath        string `yaml:"stats" env:"IPD_STATS_PATH" env-default:"tournament_stats.csv"`
	InteractionsPath string `yaml:"interactions" env:"IPD_INTERACTIONS_PATH"`
	QTablesPath      string `yaml:"qtables" env:"IPD_QTABLES_PATH"`
	MetricsPath      string `yaml:"metrics" env:"IPD_METRICS_PATH"`
	// cap on kept interactions, 0 keeps all
	MaxInteractions int `yaml:"max_interactions" env:"IPD_MAX_INTERACTIONS" env-default:"1000000"`
}

type AppConfig struct {
	Seed           int64   `yaml:"seed" env:"IPD_SEED" env-default:"42"`
	Tournaments    int     `yaml:"tournaments" env:"IPD_TOURNAMENTS" env-default:"100"`
	Rounds         int     `yaml:"rounds" env:"IPD_ROUNDS" env-default:"10"`
	MatchesPerPair int     `yaml:"matches_per_pair" env:"IPD_MATCHES_PER_PAIR" env-default:"10"`
	TurnsPerMatch  int     `yaml:"turns_per_match" env:"IPD_TURNS_PER_MATCH" env-default:"100"`
	Learners       int     `yaml:"learners" env:"IPD_LEARNERS" env-default:"2"`
	RandomBot      bool    `yaml:"random_bot" env:"IPD_RANDOM_BOT" env-default:"false"`
	LearningRate   float64 `yaml:"learning_rate" env:"IPD_LEARNING_RATE" env-default:"0.1"`
	DiscountFactor float64 `yaml:"discount_factor" env:"IPD_DISCOUNT_FACTOR" env-default:"0.9"`
	// initial rate for every new opponent
	ExplorationRate float64 `yaml:"exploration_rate" env:"IPD_EXPLORATION_RATE" env-default:"1.0"`
	DecayRate       float64 `yaml:"decay_rate" env:"IPD_DECAY_RATE" env-default:"0.99"`
	LogLevel        string  `yaml:"log_level" env:"IPD_LOG_LEVEL" env-default:"info"`

	Payoff PayoffConfig `yaml:"payoff"`
	Output OutputConfig `yaml:"output"`
}

// Load environment variables to AppConfig instance
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAppConfigFile reads a yaml file, environment variables override it
func LoadAppConfigFile(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	err := cleanenv.ReadConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	switch {
	case c.Tournaments < 0:
		return fmt.Errorf("tournaments %d: %w", c.Tournaments, ErrInvalidConfig)
	case c.Rounds < 0:
		return fmt.Errorf("rounds %d: %w", c.Rounds, ErrInvalidConfig)
	case c.MatchesPerPair < 0:
		return fmt.Errorf("matches per pair %d: %w", c.MatchesPerPair, ErrInvalidConfig)
	case c.TurnsPerMatch <= 0:
		return fmt.Errorf("turns per match %d: %w", c.TurnsPerMatch, ErrInvalidConfig)
	case c.Learners < 0:
		return fmt.Errorf("learners %d: %w", c.Learners, ErrInvalidConfig)
	case !(c.LearningRate > 0 && c.LearningRate <= 1):
		return fmt.Errorf("learning rate %v outside (0,1]: %w", c.LearningRate, ErrInvalidConfig)
	case !(c.DiscountFactor >= 0 && c.DiscountFactor <= 1):
		return fmt.Errorf("discount factor %v outside [0,1]: %w", c.DiscountFactor, ErrInvalidConfig)
	case !(c.ExplorationRate >= 0 && c.ExplorationRate <= 1):
		return fmt.Errorf("exploration rate %v outside [0,1]: %w", c.ExplorationRate, ErrInvalidConfig)
	case !(c.DecayRate > 0 && c.DecayRate <= 1):
		return fmt.Errorf("decay rate %v outside (0,1]: %w", c.DecayRate, ErrInvalidConfig)
	case c.Output.MaxInteractions < 0:
		return fmt.Errorf("max interactions %d: %w", c.Output.MaxInteractions, ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.PayoffMatrix(); err != nil {
		return err
	}
	return nil
}

func (c *AppConfig) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	return level, nil
}

func (c *AppConfig) PayoffMatrix() (*dilemma.PayoffMatrix, error) {
	m, err := dilemma.NewPayoffMatrix(c.Payoff.Temptation, c.Payoff.Reward, c.Payoff.Punishment, c.Payoff.Sucker)
	if err != nil {
		return nil, fmt.Errorf("payoff: %w: %w", ErrInvalidConfig, err)
	}
	return m, nil
}

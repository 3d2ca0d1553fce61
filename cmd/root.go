package cmd

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/resumi/job-discovery/internal/source"
)

const (
	app = "job-discovery"
)

type Config struct {
	Sources *SourcesConfig `mapstructure:"sources"`
	Redis   *RedisConfig   `mapstructure:"redis"`
	Budget  time.Duration  `mapstructure:"budget"`
	AI      *AIConfig      `mapstructure:"ai"`
	Refresh *RefreshConfig `mapstructure:"refresh"`
}

type SourcesConfig struct {
	Greenhouse *BoardConfig   `mapstructure:"greenhouse"`
	Lever      *BoardConfig   `mapstructure:"lever"`
	RemoteOK   *ToggleConfig  `mapstructure:"remoteok"`
	WWR        *FeedsConfig   `mapstructure:"weworkremotely"`
	Workday    *WorkdayConfig `mapstructure:"workday"`
}

type BoardConfig struct {
	Companies []string `mapstructure:"companies"`
}

type ToggleConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type FeedsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Feeds   []string `mapstructure:"feeds"`
}

type WorkdayConfig struct {
	Tenants []source.WorkdayTenant `mapstructure:"tenants"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type RefreshConfig struct {
	Schedule string `mapstructure:"schedule"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-discovery collects postings from public job boards and ranks them against a resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("redis.addr", "REDIS_ADDR"); err != nil {
		log.Fatalf("binding REDIS_ADDR environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-discovery.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A .env file is optional; environment bindings pick up whatever it sets.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("loading .env file: %v", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}

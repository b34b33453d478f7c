package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "pivot-navigator"
)

type Config struct {
	// Catalog is the path to a career dataset. Empty means the embedded one.
	Catalog string         `mapstructure:"catalog"`
	Export  *ExportConfig  `mapstructure:"export"`
	Profile *ProfileConfig `mapstructure:"profile"`
	AI      *AIConfig      `mapstructure:"ai"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// ProfileConfig pre-fills the interactive prompts and is the sole input source
// in non-interactive runs.
type ProfileConfig struct {
	Name             string `mapstructure:"name"`
	CurrentRole      string `mapstructure:"current-role"`
	Skills           string `mapstructure:"skills"`
	Hates            string `mapstructure:"hates"`
	Interests        string `mapstructure:"interests"`
	Constraints      string `mapstructure:"constraints"`
	Budget           string `mapstructure:"budget"`
	TimeAvailability string `mapstructure:"time-availability"`
	RemotePreference string `mapstructure:"remote-preference"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "pivot-navigator is a cli for finding realistic career pivots and generating a transition plan",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is pivot-navigator.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	// Optional .env with GEMINI_API_KEY for local runs.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	err := viper.ReadInConfig()
	if err == nil {
		return
	}

	// A missing default config is fine: the embedded catalog and environment
	// cover every required setting. An explicitly requested or corrupt config
	// file is not.
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}

	log.Fatal(err)
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

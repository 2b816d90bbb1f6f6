package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/taskdeck/taskdeck/models"
	"github.com/taskdeck/taskdeck/types"
)

// GlobalAppConfig holds the unmarshaled application configuration.
var GlobalAppConfig types.AppConfig

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file, if present. Ignore errors as it's optional.
	_ = godotenv.Load()

	viper.SetEnvPrefix("TASKDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".taskdeck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(filepath.Join(".", ".taskdeck"))
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", viper.ConfigFileUsed(), err)
		}
	} else if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Unable to decode configuration into struct", err)
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		HandleFatalError("Invalid configuration", err)
	}
}

func setDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("project.rootDir", ".taskdeck")
	viper.SetDefault("project.tasksDir", "tasks")
	viper.SetDefault("data.file", "tasks.json")
	viper.SetDefault("data.format", "json")
}

// GetConfig returns the global application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

func validateAppConfig(cfg *types.AppConfig) error {
	if err := models.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

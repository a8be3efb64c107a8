// Package config loads the server configuration from an optional YAML file
// and environment variables. The resulting Config is constructed once at
// process start and treated as immutable afterwards.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// APIConfig defines the HTTP server configuration
type APIConfig struct {
	ListenAddress string        `mapstructure:"listen_address"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
}

// TokenServiceConfig defines the connection to the external token service.
// An empty BaseURL disables service lookups entirely.
type TokenServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SlackConfig holds the static fallback tokens for local development and
// the timeout applied to Slack Web API calls.
type SlackConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	UserToken      string        `mapstructure:"user_token"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig holds the logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds the complete application configuration
type Config struct {
	API          APIConfig          `mapstructure:"api"`
	TokenService TokenServiceConfig `mapstructure:"token_service"`
	Slack        SlackConfig        `mapstructure:"slack"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Environment  string             `mapstructure:"environment"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	configFile := os.Getenv("SLACK_MCP_CONFIG_FILE")
	if configFile == "" {
		configFile = "configs/config.yaml"
	}
	v.SetConfigFile(configFile)

	// Environment variables prefixed with SLACK_MCP_ override file values
	v.SetEnvPrefix("SLACK_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind the operational variable names that don't follow the prefix.
	// Best effort - viper handles errors internally.
	_ = v.BindEnv("token_service.base_url", "TOKEN_SERVICE_URL")
	_ = v.BindEnv("token_service.api_key", "TOKEN_SERVICE_API_KEY")
	_ = v.BindEnv("slack.bot_token", "SLACK_BOT_TOKEN")
	_ = v.BindEnv("slack.user_token", "SLACK_USER_TOKEN")

	v.AllowEmptyEnv(true)

	if err := v.ReadInConfig(); err != nil {
		// Config file is not required if environment variables are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if _, statErr := os.Stat(configFile); !os.IsNotExist(statErr) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Allow ${VAR} and ${VAR:-default} references in config file values
	processEnvExpansion(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func processEnvExpansion(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if value == "" || !strings.Contains(value, "${") {
			continue
		}
		if expanded := expandEnvVars(value); expanded != value {
			v.Set(key, expanded)
		}
	}
}

// expandEnvVars expands ${VAR} and ${VAR:-default} references in a string
func expandEnvVars(value string) string {
	result := value
	for {
		start := strings.Index(result, "${")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varRef := result[start+2 : end]
		envVar, defaultVal := varRef, ""
		if strings.Contains(varRef, ":-") {
			parts := strings.SplitN(varRef, ":-", 2)
			envVar, defaultVal = parts[0], parts[1]
		}

		envVal := os.Getenv(envVar)
		if envVal == "" {
			envVal = defaultVal
		}

		result = result[:start] + envVal + result[end+1:]
	}
	return result
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.listen_address", ":8000")
	v.SetDefault("api.read_timeout", 30*time.Second)
	v.SetDefault("api.write_timeout", 60*time.Second)
	v.SetDefault("api.idle_timeout", 90*time.Second)

	v.SetDefault("token_service.timeout", 10*time.Second)

	v.SetDefault("slack.request_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("environment", "development")
}

// Validate checks the configuration for inconsistencies that would make
// the server unusable. Missing tokens are not errors; resolution may still
// succeed through the token service or request headers.
func (c *Config) Validate() error {
	if c.API.ListenAddress == "" {
		return fmt.Errorf("api.listen_address must not be empty")
	}
	if c.TokenService.BaseURL != "" && c.TokenService.APIKey == "" {
		return fmt.Errorf("token_service.api_key is required when token_service.base_url is set")
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AWSConfig holds the client settings shared by both tools.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// UploadConfig holds dns-upload specific configuration.
type UploadConfig struct {
	RequestDelay time.Duration `mapstructure:"request_delay"`
	TemplateFile string        `mapstructure:"template_file"`
}

// RebootConfig holds reboot-ec2 specific configuration.
type RebootConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	WaitTimeout  time.Duration `mapstructure:"wait_timeout"`
}

// Config is the top-level configuration struct.
type Config struct {
	AWS     AWSConfig     `mapstructure:"aws"`
	Logging LoggingConfig `mapstructure:"log"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Reboot  RebootConfig  `mapstructure:"reboot"`
}

// InitConfig performs the initial configuration: setting defaults, specifying the config file, and reading it.
func InitConfig() error {
	// A .env file in the working directory carries AWS credentials and
	// region settings during local development.
	_ = godotenv.Load()

	// Set defaults for each sub-configuration.
	viper.SetDefault("aws.region", "")
	viper.SetDefault("aws.profile", "")
	viper.SetDefault("log.level", "INFO")
	viper.SetDefault("upload.request_delay", 500*time.Millisecond)
	viper.SetDefault("upload.template_file", "dns_records_template.csv")
	viper.SetDefault("reboot.poll_interval", 15*time.Second)
	viper.SetDefault("reboot.wait_timeout", 10*time.Minute)

	// Specify the config file details.
	viper.SetConfigName("config") // Looks for config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // current directory

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// Enable automatic environment variable binding. The "."->"_" replacer
	// lines the aws section up with the standard AWS_REGION and AWS_PROFILE
	// variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}

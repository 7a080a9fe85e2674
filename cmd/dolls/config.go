package main

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

// Config holds every option the dolls command understands.
type Config struct {
	// Hostname or IP address the server will listen on.
	Host string `mapstructure:"host"`
	// TCP port the server will listen on.
	Port int `mapstructure:"port"`
	// Full path to file to which logs will be written. Blank will write to stdout.
	LogFilePath string `mapstructure:"log_file_path"`
	// Minimum level of a log required to be written. Options: trace, debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// Skip printing the processor table on startup.
	QuietStartup bool `mapstructure:"quiet_startup"`

	Capture struct {
		// Record every inbound packet to this file. Blank disables capture.
		File string `mapstructure:"file"`
	} `mapstructure:"capture"`
}

const envVarPrefix = "DOLLS"

// LoadConfig initializes Viper with the contents of the config file under
// configPath. A missing file is not an error: defaults and environment
// variables cover every option.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 25565)
	v.SetDefault("log_file_path", "")
	v.SetDefault("log_level", "trace")
	v.SetDefault("quiet_startup", false)
	v.SetDefault("capture.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, capture.file can be set using: DOLLS_CAPTURE_FILE
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("bind %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return config, nil
}

package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"torch-calculator/core/launcher"
	"torch-calculator/core/logger"
	"torch-calculator/core/server"
	"torch-calculator/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds the bind host and the probed port range.
	Server server.Config `mapstructure:"server"`
	// App holds the asset and data locations and browser behaviour.
	App launcher.Config `mapstructure:"app"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the optional backup bucket.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and an optional
// .env file in path. Every key has a default, so no file is required.
func LoadConfig(path string) (*Config, error) {
	// Ignore error if file doesn't exist (the usual case for the desktop build)
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT_START -> server.port_start)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

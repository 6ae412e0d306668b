package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"account-reconciler/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "RECONCILER"

// Config holds all configuration for the application.
type Config struct {
	// Input holds the locations of the account lists and the result directory.
	Input InputConfig `mapstructure:"input"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// InputConfig locates the files of one reconciliation run.
// Bare file names are resolved against DataDir; paths with a directory
// component are used as given.
type InputConfig struct {
	DataDir        string   `mapstructure:"data_dir" default:"data/csv"`
	MainFile       string   `mapstructure:"main_file" default:"pantheon_cancel_account_list.csv"`
	ReferenceFiles []string `mapstructure:"reference_files" default:"active_accounts.csv,canceled_accounts.csv"`
	OutputDir      string   `mapstructure:"output_dir" default:"results"`
}

// MainPath returns the resolved path of the main account list.
func (c InputConfig) MainPath() string {
	return c.resolve(c.MainFile)
}

// ReferencePaths returns the resolved reference file paths in configured order.
func (c InputConfig) ReferencePaths() []string {
	paths := make([]string, 0, len(c.ReferenceFiles))
	for _, f := range c.ReferenceFiles {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		paths = append(paths, c.resolve(f))
	}
	return paths
}

// OutputPath returns the resolved result directory.
func (c InputConfig) OutputPath() string {
	return c.resolve(c.OutputDir)
}

func (c InputConfig) resolve(name string) string {
	if c.DataDir == "" || filepath.IsAbs(name) || filepath.Base(name) != name {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// inputFlags maps command-line flags to the configuration keys they override.
var inputFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"data-dir", "input.data_dir", "Directory bare file names are resolved against"},
	{"main", "input.main_file", "Main CSV file listing accounts to check"},
	{"reference", "input.reference_files", "Comma-separated reference CSV files, checked in order"},
	{"output", "input.output_dir", "Directory to write result files to"},
}

// RegisterFlags adds the input location flags to a flag set.
// Flags only take effect when they are explicitly set.
func RegisterFlags(flags *pflag.FlagSet) {
	for _, f := range inputFlags {
		if f.name == "reference" {
			flags.StringSlice(f.name, nil, f.usage)
			continue
		}
		flags.String(f.name, "", f.usage)
	}
}

// LoadConfig resolves the configuration of a run. Values are taken, in
// increasing priority, from struct-tag defaults, the .env file in dir,
// RECONCILER_* environment variables and explicitly set flags.
// A nil flag set skips the flag layer.
func LoadConfig(dir string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	for key, value := range tagDefaults(reflect.TypeOf(Config{}), "") {
		v.SetDefault(key, value)
	}

	// RECONCILER_INPUT_MAIN_FILE -> input.main_file
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, f := range inputFlags {
			flag := flags.Lookup(f.name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(f.key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", f.name, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Input.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports input settings that cannot describe a run.
func (c InputConfig) Validate() error {
	if strings.TrimSpace(c.MainFile) == "" {
		return errors.New("input.main_file is required")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("input.output_dir is required")
	}
	return nil
}

// tagDefaults walks a config struct and returns the 'default' tag of every
// leaf field keyed by its dotted 'mapstructure' path. Leaves without a
// default still get an entry so AutomaticEnv can see the key.
func tagDefaults(t reflect.Type, prefix string) map[string]string {
	defaults := make(map[string]string)
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
			for k, v := range tagDefaults(field.Type, key) {
				defaults[k] = v
			}
			continue
		}
		defaults[key] = field.Tag.Get("default")
	}
	return defaults
}

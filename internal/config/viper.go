package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the converter, e.g.
// MAILING_ACCOUNT or MAILING_CSV_DELIMITER.
const EnvPrefix = "MAILING"

// LoadOptions tells InitializeConfig where to look besides the defaults.
type LoadOptions struct {
	// ConfigFile is an explicit config file. Empty searches the default
	// locations and tolerates a missing file.
	ConfigFile string

	// EnvFile is loaded into the environment before MAILING_* variables are
	// read. Missing files are ignored.
	// Default: ".env"
	EnvFile string

	// Flags maps configuration keys to command-line flags. A flag only
	// overrides the other sources when it was set explicitly.
	Flags map[string]*pflag.Flag
}

// InitializeConfig loads the configuration from defaults, config file,
// environment and flags, then applies defaults and validates the result.
func InitializeConfig(opts LoadOptions) (*MainConfig, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(".mailing-converter")
		v.AddConfigPath("$HOME/.mailing-converter")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	var config MainConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so that AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("input_dir", defaults.InputDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("input_archive_dir", defaults.InputArchiveDir)
	v.SetDefault("archive_inputs", defaults.ArchiveInputs)
	v.SetDefault("output_name_format", defaults.OutputNameFormat)
	v.SetDefault("sheet_name", defaults.SheetName)
	v.SetDefault("account", "")
	v.SetDefault("locale", "")
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("max_concurrency", defaults.MaxConcurrency)
	v.SetDefault("row_workers", defaults.RowWorkers)
	v.SetDefault("continue_on_error", defaults.ContinueOnError)
	v.SetDefault("csv.delimiter", defaults.CSV.Delimiter)
	v.SetDefault("csv.encoding", defaults.CSV.Encoding)
}

package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ruleforge/rulesync/internal/errors"
)

// newViperInstance creates a new Viper instance with standard rulesync
// configuration: defaults, environment variable prefix (RULESYNC_), and
// key replacer so RULESYNC_GIT_REMOTE maps to git.remote.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("RULESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults applies the built-in default values to a Viper instance.
// Kept in sync with DefaultConfig.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	// Git defaults
	v.SetDefault("git.remote", defaults.Git.Remote)
	v.SetDefault("git.branch", defaults.Git.Branch)
	v.SetDefault("git.message_prefix", defaults.Git.MessagePrefix)
	v.SetDefault("git.command_timeout", defaults.Git.CommandTimeout.String())

	// Rules defaults
	v.SetDefault("rules.custom_dir", defaults.Rules.CustomDir)
	v.SetDefault("rules.output_dir", defaults.Rules.OutputDir)
	v.SetDefault("rules.download_timeout", defaults.Rules.DownloadTimeout.String())
	v.SetDefault("rules.concurrency", defaults.Rules.Concurrency)
}

// isConfigNotFoundError returns true if the error is a viper config file
// not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (RULESYNC_* prefix)
//  2. Project config (<root>/.rulesync/config.yaml)
//  3. Global config (~/.rulesync/config.yaml)
//  4. Built-in defaults
//
// The root parameter is the repository root; pass "" to skip the project
// layer (e.g. before the root is known).
//
// The function returns an error only for actual configuration problems,
// not for missing config files, which are expected in many setups.
func Load(ctx context.Context, root string) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence)
	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	// Project config merges over global
	if root != "" {
		if err := loadProjectConfig(v, root); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("git.remote", cfg.Git.Remote).
		Str("rules.custom_dir", cfg.Rules.CustomDir).
		Dur("rules.download_timeout", cfg.Rules.DownloadTimeout).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// loadGlobalConfig attempts to load the global config file
// (~/.rulesync/config.yaml). Missing files are skipped silently.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil {
		// Home dir unavailable; defaults still apply.
		return nil
	}
	if !fileExists(globalConfigPath) {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to load the project config file
// (<root>/.rulesync/config.yaml). Missing files are skipped silently.
func loadProjectConfig(v *viper.Viper, root string) error {
	projectConfigPath := ProjectConfigPath(root)
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// viperDecoderOption returns the decode hook configuration, enabling
// "30s"-style duration strings in config files.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BaseDirName  = ".config/collectd-view"
	DatabaseName = "collectd-view.db"
	LogFileName  = "collectd-view.log"
)

var Config *viper.Viper

var globalFlagsToConfigKey = map[string]string{
	"config-path": "config_path",
	"verbose":     "verbose",
}

func GetDatabasePath() string {
	return filepath.Join(Config.GetString("config_path"), DatabaseName)
}

func GetLogFilePath() string {
	return filepath.Join(Config.GetString("config_path"), LogFileName)
}

// GetPolicyPath is the access-control artifact consumed by the web server.
// It lives inside the served directory, not under the config path.
func GetPolicyPath() string {
	return Config.GetString("policy.path")
}

func GetLockPath() string {
	return Config.GetString("lock.path")
}

func GetServerBinary() string {
	return Config.GetString("server.binary")
}

func GetServerConfig() string {
	return Config.GetString("server.config")
}

// GetPollInterval returns the session poll interval, falling back to one
// second when the configured value does not parse.
func GetPollInterval() time.Duration {
	raw := Config.GetString("poll.interval")
	interval, err := time.ParseDuration(raw)
	if err != nil {
		slog.Error(fmt.Sprintf("Invalid poll.interval config: %v, using default 1s", err))
		return time.Second
	}
	return interval
}

func GetLogMaxSizeMB() int {
	return Config.GetInt("log.max_size_mb")
}

func GetLogMaxBackups() int {
	return Config.GetInt("log.max_backups")
}

func InitializeConfig(cmd *cobra.Command) error {
	Config = viper.New()

	// Set config path from user input
	configPath, err := cmd.Parent().Flags().GetString("config-path")
	if err != nil {
		panic("Unable to determine config path")
	}
	Config.AddConfigPath(configPath)

	// Set config name
	Config.SetConfigName("config")
	Config.SetConfigType("toml")

	// Set defaults
	Config.SetDefault("verbose", 0)
	Config.SetDefault("policy.path", "/var/www/collectd/.htaccess")
	Config.SetDefault("lock.path", "/var/lock/collectd-view.lock")
	Config.SetDefault("server.binary", "/usr/sbin/apache2")
	Config.SetDefault("server.config", "/etc/collectd-view/httpd.conf")
	Config.SetDefault("poll.interval", "1s")
	Config.SetDefault("log.max_size_mb", 10)
	Config.SetDefault("log.max_backups", 3)

	// Setup env reading
	Config.SetEnvPrefix("collectd_view")

	// Load config file
	if err := Config.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found - create config path and write config with defaults
			err := os.MkdirAll(configPath, 0o755)
			if err != nil {
				panic(err)
			}
			Config.SafeWriteConfig()
		} else {
			// Config file was found but another error occurred
			panic(err)
		}
	}

	// In order to get environment variables mapped into config sections, we need to replace . with _
	Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Config.AutomaticEnv() // read in environment variables that match

	// Bind the current command's flags to viper
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			// Is this a global flag
			configKey, ok := globalFlagsToConfigKey[f.Name]
			if !ok {
				return
			}

			// Apply the viper config value to the flag when the flag is not set and viper has a value
			if !f.Changed && Config.IsSet(configKey) {
				cmd.Flags().Set(f.Name, fmt.Sprintf("%v", Config.Get(configKey)))
			} else {
				Config.Set(configKey, fmt.Sprintf("%v", f.Value))
			}
		})
	}

	return nil
}

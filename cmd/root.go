// Package cmd holds the inkwell command line.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SvenDH/inkwell/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Compile and resolve card abilities",
	Long: `inkwell turns the rules text of a card catalog into structured abilities,
reports which texts it could not compile and serves player choices over websockets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		logger = cfg.Logger(cmd.ErrOrStderr())
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./inkwell.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().String("catalog", "", "card catalog file (yaml or json)")

	bind(rootCmd, "log.level", "log-level")
	bind(rootCmd, "log.format", "log-format")
	bind(rootCmd, "catalog", "catalog")
}

func bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("cmd: bind %s: %v", flag, err))
	}
}

// loadConfig reads the config file, then lets flags and INKWELL_* environment
// variables override single values.
func loadConfig() (*config.Config, error) {
	v := viper.GetViper()
	v.SetEnvPrefix("inkwell")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := cfgFile
	if path == "" {
		if _, err := os.Stat("inkwell.yaml"); err == nil {
			path = "inkwell.yaml"
		}
	}
	c := config.Default()
	if path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	str := func(key string, dst *string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	var level string
	str("log.level", &level)
	if level != "" {
		c.Log.Level = config.LogLevel(level)
	}
	str("log.format", &c.Log.Format)
	str("catalog", &c.Catalog)
	str("coverage.driver", &c.Coverage.Driver)
	str("coverage.path", &c.Coverage.Path)
	if v.IsSet("coverage.top") {
		c.Coverage.Top = v.GetInt("coverage.top")
	}
	str("serve.addr", &c.Serve.Addr)
	str("serve.jwt_secret", &c.Serve.JWTSecret)
	if d := v.GetDuration("serve.token_ttl"); d != 0 {
		c.Serve.TokenTTL = d
	}

	if err := config.Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

var errNoCatalog = errors.New("no card catalog given; set --catalog or catalog in the config file")

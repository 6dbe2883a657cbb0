// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the srctools CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/srctools/internal/fdec"
	"github.com/pdiddy/srctools/internal/wsolve"
	"github.com/pdiddy/srctools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the srctools CLI.
var rootCmd = &cobra.Command{
	Use:   "srctools",
	Short: "Housekeeping tools for a C source tree",
	Long: `srctools bundles two small tools for keeping a C source tree tidy.

fdec scans a source file and writes an include-guarded header with forward
declarations for every function it defines. wsolve strips trailing
whitespace and converts tabs to spaces across a directory tree. Runs can
be recorded in a local history ledger (history.enabled).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./srctools.yaml or ~/.config/srctools/srctools.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	setDefaults()
}

// setDefaults registers the default value of every config key so that
// environment overrides and Unmarshal see the full key set.
func setDefaults() {
	viper.SetDefault("fdec.input", fdec.DefaultInput)
	viper.SetDefault("fdec.output", "")
	viper.SetDefault("fdec.attribution", fdec.DefaultAttribution)
	viper.SetDefault("fdec.tool_name", fdec.DefaultToolName)

	viper.SetDefault("wsolve.root", ".")
	viper.SetDefault("wsolve.ignore_prefixes", wsolve.DefaultIgnorePrefixes)
	viper.SetDefault("wsolve.skip_dirs", wsolve.DefaultSkipDirs)
	viper.SetDefault("wsolve.tab_width", wsolve.DefaultTabWidth)
	viper.SetDefault("wsolve.workers", 0)
	viper.SetDefault("wsolve.progress", false)

	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.dir", "")
	viper.SetDefault("history.max_results", 20)
}

func initConfig() {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("srctools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "srctools"))
		}
	}

	viper.SetEnvPrefix("SRCTOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		log.Warn("could not read config file", "path", cfgFile, "err", err)
	}
}

// loadConfig decodes the merged defaults, config file, environment and
// bound flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// bindFlags binds flags of fs to config keys. The map goes from config key
// to flag name.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s to %s: %v", name, key, err))
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

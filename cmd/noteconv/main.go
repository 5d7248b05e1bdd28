// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the noteconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process-wide logger; the --debug flag raises its level.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// rootCmd is the base command for the noteconv CLI.
var rootCmd = &cobra.Command{
	Use:   "noteconv",
	Short: "Convert Box Notes to Word, Markdown, or HTML documents",
	Long: `noteconv converts .boxnote rich-document files into Word packages,
Markdown, or HTML, preserving text styling, nested lists, tables with
merged cells, images, checklists, callouts, and code blocks.

Point it at a single note or a directory of notes; directory conversion
runs through a bounded worker pool and can skip notes whose output is
already up to date.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log = log.Level(zerolog.DebugLevel)
			log.Debug().Msg("debug logging enabled")
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./noteconv.yaml or ~/.config/noteconv/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "write debugging information to the console")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("noteconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "noteconv"))
		}
	}

	viper.SetEnvPrefix("NOTECONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

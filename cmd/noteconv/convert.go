// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteconv/internal/batch"
	"github.com/pdiddy/noteconv/internal/index"
	"github.com/pdiddy/noteconv/internal/note"
	"github.com/pdiddy/noteconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <path>...",
	Short: "Convert notes to the selected output format",
	Long: `Convert transforms one or more .boxnote files into the selected output
format. A directory argument converts every note it contains; --recursive
descends into subdirectories. Outputs land next to their source notes.

Notes whose output already exists are skipped unless --force is given.
With an index directory configured, skipping also checks that the note
content is unchanged since the recorded conversion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := convertConfig(cmd)
		if err != nil {
			return err
		}
		recursive, _ := cmd.Flags().GetBool("recursive")

		var paths []string
		for _, arg := range args {
			found, err := note.Find(arg, recursive)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
		fmt.Fprintf(os.Stderr, "found %d notes\n", len(paths))
		if len(paths) == 0 {
			return nil
		}

		runner := &batch.Runner{Cfg: cfg, Log: log}
		if cfg.IndexDir != "" {
			store, err := index.Open(cfg.IndexDir)
			if err != nil {
				return err
			}
			defer store.Close()
			runner.Store = store
		}

		result := runner.Run(paths, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d of %d notes failed to convert", result.Failed, result.Total())
		}
		return nil
	},
}

// convertConfig assembles the conversion settings from flags, falling
// back to the config file and environment via viper.
func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	flagOrViperString := func(flag, key string) string {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			return v
		}
		if viper.IsSet(key) {
			return viper.GetString(key)
		}
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	flagOrViperInt := func(flag, key string) int {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetInt(flag)
			return v
		}
		if viper.IsSet(key) {
			return viper.GetInt(key)
		}
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}

	format, err := types.ParseFormat(flagOrViperString("format", "convert.format"))
	if err != nil {
		return types.ConvertConfig{}, err
	}

	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg := types.ConvertConfig{
		Format:    format,
		PageWidth: flagOrViperInt("page-width", "convert.page_width"),
		Workers:   flagOrViperInt("workers", "convert.workers"),
		Force:     force,
		DryRun:    dryRun,
		IndexDir:  flagOrViperString("index-dir", "convert.index_dir"),
	}
	return cfg.WithDefaults(), nil
}

func init() {
	convertCmd.Flags().String("format", "docx", "output format: docx, md, or html")
	convertCmd.Flags().Bool("recursive", false, "convert notes within all subdirectories of the specified directory")
	convertCmd.Flags().Bool("force", false, "reconvert notes whose output already exists")
	convertCmd.Flags().Bool("dry-run", false, "report what would be converted without writing anything")
	convertCmd.Flags().Int("workers", types.DefaultWorkers, "number of parallel conversion workers")
	convertCmd.Flags().Int("page-width", types.DefaultPageWidth, "usable page content width in points (bounds image size)")
	convertCmd.Flags().String("index-dir", "", "directory for the conversion ledger database (empty disables it)")

	rootCmd.AddCommand(convertCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/noteconv/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the conversion ledger",
	Long: `Index lists the recorded conversions: which notes were converted, to
which format, and how many warnings each produced. With --export the full
ledger is written as YAML instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("index-dir")
		store, err := index.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()

		if export, _ := cmd.Flags().GetBool("export"); export {
			return store.ExportYAML(os.Stdout)
		}

		entries, err := store.All()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no conversions recorded")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  [%s]  %s  warnings=%d  %s\n",
				e.NotePath, e.Format, e.OutputPath, e.Warnings,
				e.ConvertedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().String("index-dir", "index", "directory holding the conversion ledger database")
	indexCmd.Flags().Bool("export", false, "export the ledger as YAML to stdout")

	rootCmd.AddCommand(indexCmd)
}

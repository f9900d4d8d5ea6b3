// Package main generates a batch of unlock codes and writes them to flat
// files: the list the app validates against plus JSON/CSV tracking lists.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"krouai/internal/codes"

	"github.com/spf13/cobra"
)

func main() {
	var (
		count  int
		prefix string
		outDir string
	)

	rootCmd := &cobra.Command{
		Use:   "codegen",
		Short: "Generate unique unlock codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := codes.NewGenerator(prefix, time.Now().UnixNano())
			batch, err := gen.Batch(count)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}

			validPath := filepath.Join(outDir, "valid_codes.json")
			masterPath := filepath.Join(outDir, "codes_master_list.json")
			csvPath := filepath.Join(outDir, "codes_master_list.csv")

			if err := codes.WriteValidCodes(validPath, batch); err != nil {
				return err
			}
			if err := codes.WriteMasterList(masterPath, batch); err != nil {
				return err
			}
			if err := codes.WriteCSV(csvPath, batch); err != nil {
				return err
			}

			fmt.Printf("Generated %d codes\n", len(batch))
			fmt.Printf("  %s - for the app\n", validPath)
			fmt.Printf("  %s - tracking list (keep private)\n", masterPath)
			fmt.Printf("  %s - tracking spreadsheet\n", csvPath)
			fmt.Println("Sample codes:")
			for _, code := range batch[:min(10, len(batch))] {
				fmt.Printf("  %s\n", code)
			}
			return nil
		},
	}

	rootCmd.Flags().IntVar(&count, "count", 1000, "number of codes to generate")
	rootCmd.Flags().StringVar(&prefix, "prefix", "KR", "code prefix")
	rootCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

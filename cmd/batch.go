// file: cmd/batch.go
// version: 1.1.0
// guid: 0c2e4a6b-8d0f-4b1c-9d2e-3f4a5b6c7d8e

package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yschoi/aladin-lookup/internal/aladin"
	"github.com/yschoi/aladin-lookup/internal/metadata"
)

// batchCmd looks up a list of ISBNs from a file, one per line.
var batchCmd = &cobra.Command{
	Use:   "batch <isbn-file>",
	Short: "Look up a file of ISBNs (one per line)",
	Long: `Read ISBNs from a file (one per line, # starts a comment), look each
one up, and write the collected records as JSON or YAML. ISBNs without a
match are reported and skipped, never fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isbns, err := readISBNFile(args[0])
		if err != nil {
			return err
		}
		if len(isbns) == 0 {
			return fmt.Errorf("no ISBNs found in %s", args[0])
		}

		client, ids, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore(ids)

		bar := progressbar.NewOptions(len(isbns),
			progressbar.OptionSetDescription("looking up"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var books []metadata.Book
		var misses []string
		for _, isbn := range isbns {
			results, err := client.Lookup(cmd.Context(), metadata.Query{ISBN: isbn})
			switch {
			case errors.Is(err, aladin.ErrNoMatch):
				misses = append(misses, isbn)
			case err != nil:
				log.Printf("[WARN] lookup failed for %s: %v", isbn, err)
				misses = append(misses, isbn)
			default:
				books = append(books, results[0])
			}
			_ = bar.Add(1)
		}
		_ = bar.Finish()

		outPath := cmd.Flag("out").Value.String()
		format := cmd.Flag("format").Value.String()
		if err := writeBatch(outPath, books, format); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d of %d ISBNs\n", len(books), len(isbns))
		if len(misses) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No match: %s\n", strings.Join(misses, ", "))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().String("format", "yaml", "output format: json or yaml")
	batchCmd.Flags().String("out", "-", "output file (- for stdout)")
}

// readISBNFile parses one ISBN per line; blank lines and # comments skip.
func readISBNFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ISBN file: %w", err)
	}
	defer f.Close()

	var isbns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isbn := metadata.NormalizeISBN(line); isbn != "" {
			isbns = append(isbns, isbn)
		} else {
			log.Printf("[WARN] skipping invalid ISBN line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ISBN file: %w", err)
	}
	return isbns, nil
}

func writeBatch(path string, books []metadata.Book, format string) error {
	outs := make([]bookOutput, 0, len(books))
	for _, b := range books {
		outs = append(outs, toOutput(b))
	}

	var w *os.File
	if path == "" || path == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outs)
	case "", "yaml":
		return yaml.NewEncoder(w).Encode(outs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// file: cmd/root.go
// version: 1.3.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yschoi/aladin-lookup/internal/aladin"
	"github.com/yschoi/aladin-lookup/internal/cache"
	"github.com/yschoi/aladin-lookup/internal/config"
	"github.com/yschoi/aladin-lookup/internal/metadata"
	"github.com/yschoi/aladin-lookup/internal/server"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aladin-lookup",
	Short: "Fetch book metadata from Aladin.co.kr",
	Long: `Aladin Lookup fetches book metadata (title, authors, series, ISBN,
description, rating, publisher, tags, cover) from the Aladin.co.kr online
bookstore by ISBN or by title/author search.

Categories and item tags can be rewritten through a user-configurable
mapping table before they are returned.`,
}

// lookupCmd resolves a single query and prints the records.
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up one book by ISBN, item id, or title/author",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := metadata.Query{
			ISBN:   cmd.Flag("isbn").Value.String(),
			ItemID: cmd.Flag("item-id").Value.String(),
			Title:  cmd.Flag("title").Value.String(),
			Author: cmd.Flag("author").Value.String(),
		}
		if q.IsEmpty() {
			return fmt.Errorf("one of --isbn, --item-id, --title or --author is required")
		}

		client, ids, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore(ids)

		books, err := client.Lookup(cmd.Context(), q)
		if err != nil {
			return err
		}
		return writeBooks(cmd.OutOrStdout(), books, cmd.Flag("format").Value.String())
	},
}

// coverCmd downloads the cover image for an ISBN.
var coverCmd = &cobra.Command{
	Use:   "cover <isbn>",
	Short: "Download the cover image for an ISBN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isbn := metadata.NormalizeISBN(args[0])
		if isbn == "" {
			return fmt.Errorf("invalid ISBN: %s", args[0])
		}

		client, ids, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore(ids)

		coverURL, err := client.CoverForISBN(cmd.Context(), isbn)
		if err != nil {
			return fmt.Errorf("no cover found for %s: %w", isbn, err)
		}
		destDir := cmd.Flag("out").Value.String()
		path, err := client.DownloadCover(cmd.Context(), coverURL, destDir, isbn)
		if err != nil {
			return fmt.Errorf("failed to download cover: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cover saved to %s\n", path)
		return nil
	},
}

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long:  `Start an HTTP API exposing /api/v1/lookup, /api/v1/cover/{isbn}, /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, ids, err := newClient()
		if err != nil {
			return err
		}
		defer closeStore(ids)

		lookups := server.NewLookupService(client, client, config.AppConfig.CacheTTL)

		// Tag-mapping edits in the config file apply to subsequent lookups;
		// cached results carry old tags, so they go too.
		config.Watch(func(cfg config.Config) {
			client.SetTagMapper(newTagMapper(cfg))
			lookups.InvalidateResults()
			log.Printf("[INFO] tag mappings reloaded (%d entries)", len(cfg.TagMappings))
		})
		srv := server.NewServer(lookups)
		cfg := server.GetDefaultServerConfig()

		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aladin-lookup.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "site base URL override")
	rootCmd.PersistentFlags().Int("max-results", 5, "maximum records per lookup")
	rootCmd.PersistentFlags().Duration("timeout", 20*time.Second, "HTTP timeout per request")
	rootCmd.PersistentFlags().Bool("all-contributors", false, "include translators/illustrators, not only primary authors")
	rootCmd.PersistentFlags().Bool("small-cover", false, "keep thumbnail covers instead of full-size images")
	rootCmd.PersistentFlags().String("cache", "", "path to the sqlite identifier cache (empty disables)")

	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("max_results", rootCmd.PersistentFlags().Lookup("max-results"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("all_contributors", rootCmd.PersistentFlags().Lookup("all-contributors"))
	viper.BindPFlag("small_cover", rootCmd.PersistentFlags().Lookup("small-cover"))
	viper.BindPFlag("cache_path", rootCmd.PersistentFlags().Lookup("cache"))

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(coverCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)

	lookupCmd.Flags().String("isbn", "", "ISBN-10 or ISBN-13")
	lookupCmd.Flags().String("item-id", "", "Aladin item id")
	lookupCmd.Flags().String("title", "", "book title")
	lookupCmd.Flags().String("author", "", "author name")
	lookupCmd.Flags().String("format", "text", "output format: text, json or yaml")

	coverCmd.Flags().String("out", ".", "directory to save the cover under")

	serveCmd.Flags().String("port", "8080", "port to listen on")
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "60s", "write timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aladin-lookup")
	}

	viper.SetEnvPrefix("ALADIN_LOOKUP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Printf("[DEBUG] using config file: %s", viper.ConfigFileUsed())
	}

	config.InitConfig()
}

// newTagMapper builds the mapper from current configuration.
func newTagMapper(cfg config.Config) *metadata.TagMapper {
	return metadata.NewTagMapper(metadata.TagMapperOptions{
		Mapping:        cfg.TagMappings,
		CategoryPrefix: cfg.CategoryPrefix,
		Delimiter:      cfg.CategoryDelim,
		Passthrough:    cfg.TagPassthrough,
	})
}

// newClient assembles the Aladin client from configuration. The returned
// identifier store may be nil when caching is disabled.
func newClient() (*aladin.Client, *cache.IdentifierStore, error) {
	cfg := config.AppConfig
	opts := aladin.Options{
		MaxResults:      cfg.MaxResults,
		AllContributors: cfg.AllContributors,
		SmallCover:      cfg.SmallCover,
		AppendTOC:       cfg.AppendTOC,
		CommentsSuffix:  cfg.CommentsSuffix,
		Timeout:         cfg.Timeout,
		RequestInterval: cfg.RequestInterval,
	}

	var client *aladin.Client
	if cfg.BaseURL != "" {
		client = aladin.NewClientWithBaseURL(cfg.BaseURL, opts)
	} else {
		client = aladin.NewClient(opts)
	}
	client.SetTagMapper(newTagMapper(cfg))

	var ids *cache.IdentifierStore
	if cfg.CachePath != "" {
		var err error
		ids, err = cache.NewIdentifierStore(cfg.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open identifier cache: %w", err)
		}
		client.SetIdentifierStore(ids)
	}
	return client, ids, nil
}

func closeStore(ids *cache.IdentifierStore) {
	if ids != nil {
		if err := ids.Close(); err != nil {
			log.Printf("[WARN] identifier cache close failed: %v", err)
		}
	}
}

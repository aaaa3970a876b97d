// file: internal/config/config.go
// version: 1.2.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RequestInterval time.Duration
	MaxResults      int

	// Field extraction options
	AllContributors bool   // include translators/illustrators, not just primary authors
	SmallCover      bool   // keep thumbnail covers instead of full-size images
	AppendTOC       bool   // append the table of contents to the description
	CommentsSuffix  string // HTML appended to every description

	// Tag mapping
	TagMappings    map[string][]string // source category/tag -> host tags
	TagPassthrough bool                // keep unmapped item tags
	CategoryPrefix string
	CategoryDelim  string

	// Caching
	CachePath string // sqlite identifier cache; empty disables
	CacheTTL  time.Duration
}

var AppConfig Config

// InitConfig initializes the application configuration from viper.
func InitConfig() {
	viper.SetDefault("base_url", "https://www.aladin.co.kr")
	viper.SetDefault("timeout", "20s")
	viper.SetDefault("request_interval", "200ms")
	viper.SetDefault("max_results", 5)
	viper.SetDefault("append_toc", true)
	viper.SetDefault("tag_passthrough", true)
	viper.SetDefault("category_delimiter", ".")
	viper.SetDefault("cache_ttl", "1h")

	AppConfig = Config{
		BaseURL:         viper.GetString("base_url"),
		Timeout:         viper.GetDuration("timeout"),
		RequestInterval: viper.GetDuration("request_interval"),
		MaxResults:      viper.GetInt("max_results"),
		AllContributors: viper.GetBool("all_contributors"),
		SmallCover:      viper.GetBool("small_cover"),
		AppendTOC:       viper.GetBool("append_toc"),
		CommentsSuffix:  viper.GetString("comments_suffix"),
		TagMappings:     viper.GetStringMapStringSlice("tag_mappings"),
		TagPassthrough:  viper.GetBool("tag_passthrough"),
		CategoryPrefix:  viper.GetString("category_prefix"),
		CategoryDelim:   viper.GetString("category_delimiter"),
		CachePath:       viper.GetString("cache_path"),
		CacheTTL:        viper.GetDuration("cache_ttl"),
	}
}

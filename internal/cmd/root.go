// Package cmd provides the command-line interface for seokumo.
// It handles command parsing, configuration loading, and crawl execution.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/seokumo/seokumo/internal/config"
	"github.com/seokumo/seokumo/internal/crawler"
	"github.com/seokumo/seokumo/internal/logging"
	"github.com/seokumo/seokumo/internal/report"
	"github.com/seokumo/seokumo/internal/storage"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seokumo URL",
	Short: "A bounded SEO crawler for single websites",
	Long: `Seokumo crawls one website within a page budget, preferring
sitemap.xml discovery and falling back to link discovery. It extracts
SEO metadata and cleaned content per page, maps the internal link graph,
and writes one structured JSON dataset for the whole crawl.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrawler,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seokumo.yml)")
	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	// Crawl flags
	rootCmd.Flags().IntP("max-pages", "m", 100, "Maximum number of pages to crawl")
	rootCmd.Flags().Float64P("delay", "d", 0.5, "Delay between requests in seconds")
	rootCmd.Flags().Bool("no-sitemap", false, "Skip sitemap.xml discovery and use link discovery only")
	rootCmd.Flags().IntP("content-limit", "c", 0, "Limit extracted content to N characters (0=unlimited)")
	rootCmd.Flags().StringP("output", "o", "seo_crawler_results.json", "Output JSON file")
	rootCmd.Flags().DurationP("timeout", "t", 30*time.Second, "HTTP request timeout")
	rootCmd.Flags().StringP("user-agent", "u", "Seokumo/1.0", "HTTP User-Agent header")

	// Link graph flags
	rootCmd.Flags().Float64("nav-threshold", 0.8, "Fraction of pages a link must appear on to count as navigation (0.0-1.0)")
	rootCmd.Flags().Bool("no-link-structure", false, "Exclude the link structure data from the JSON output")

	// Archive flags
	rootCmd.Flags().String("database", "", "Path to an optional SQLite crawl archive")

	// Logging flags
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().String("log-file", "", "Write logs to this file in addition to the console")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"max_pages", "max-pages"},
		{"request_delay", "delay"},
		{"request_timeout", "timeout"},
		{"user_agent", "user-agent"},
		{"content_limit", "content-limit"},
		{"output_path", "output"},
		{"nav_threshold", "nav-threshold"},
		{"database_path", "database"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.Flags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("seokumo")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SEOKUMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func generateUserAgent() string {
	if version != "" && version != "dev" {
		return fmt.Sprintf("Seokumo/%s", version)
	}
	return "Seokumo/dev"
}

func showCurrentConfig(cfg *config.CrawlConfig) error {
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current seokumo configuration\n")
	fmt.Printf("# Configuration file search paths: ./seokumo.yml\n")
	fmt.Printf("# Environment variables prefix: SEOKUMO_\n\n")
	fmt.Print(string(yamlData))
	return nil
}

func runCrawler(cmd *cobra.Command, args []string) error {
	showConfig, _ := cmd.Flags().GetBool("show-config")

	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	// Negative flags map onto positive config keys.
	if noSitemap, _ := cmd.Flags().GetBool("no-sitemap"); noSitemap {
		cfg.UseSitemap = false
	}
	if noLinks, _ := cmd.Flags().GetBool("no-link-structure"); noLinks {
		cfg.LinkStructure = false
	}

	if !cmd.Flags().Changed("user-agent") && cfg.UserAgent == "Seokumo/1.0" {
		cfg.UserAgent = generateUserAgent()
	}

	if showConfig {
		return showCurrentConfig(cfg)
	}

	if len(args) == 0 && cfg.StartURL == "" {
		return fmt.Errorf("no URL provided\nUsage: %s URL [flags]", os.Args[0])
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(logLevel)
	logCfg.FilePath = logFile
	if err := logging.SetDefault(*logCfg); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	var store crawler.Storage
	if cfg.DatabasePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		sqlStore, err := storage.NewSQLiteStorage(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer func() { _ = sqlStore.Close() }()
		store = sqlStore
	}

	c, err := crawler.New(cfg, store)
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %w", err)
	}
	defer c.Close()

	rep, err := c.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	if err := report.WriteFile(cfg.OutputPath, rep); err != nil {
		return err
	}

	fmt.Printf("Crawling complete!\n")
	fmt.Printf("  Starting URL:  %s\n", rep.StartURL)
	fmt.Printf("  Sitemap used:  %t\n", rep.SitemapUsed)
	fmt.Printf("  Pages crawled: %d\n", rep.PagesCrawled)
	fmt.Printf("  Results saved: %s\n", cfg.OutputPath)
	return nil
}

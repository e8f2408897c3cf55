package main

import (
	"github.com/spf13/cobra"

	"github.com/jmgilman/objfs/internal/config"
)

// rootCmd creates the root command with all subcommands registered.
func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objfs",
		Short: "Browse S3-compatible object storage like a filesystem",
		Long: `objfs lists, reads, sizes and removes objects addressed as
s3://bucket/key (s3n:// and s3a:// are accepted too) or as local paths.

Patterns accept *, ? and [...] globs; * also matches "/". A pattern naming a
directory selects everything beneath it. Files ending in .gz, .bz2 or .zst
are decompressed when read.

Examples:
  # List every gzip file under a prefix
  objfs ls 's3://walrus/logs/*.gz'

  # Print decompressed lines
  objfs cat 's3://walrus/logs/2024-01-0[1-3]*.gz'

  # Total size of a prefix
  objfs du s3://walrus/logs`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}

	defaults := config.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.StringVar(&a.configPath, "config", "", "Path to config.toml file (default: "+config.DefaultPath()+")")
	flags.BoolVar(&a.jsonErrors, "json", false, "Print errors as JSON")
	flags.BoolVar(&a.showMetrics, "metrics", false, "Print Prometheus metrics to stderr on exit")
	flags.IntVarP(&a.concurrency, "concurrency", "j", 4, "Maximum concurrent requests for du and rm")

	flags.String("backend", defaults.Storage.Backend, "Storage backend (minio|aws)")
	flags.String("endpoint", defaults.Storage.Endpoint, "Storage endpoint")
	flags.String("region", defaults.Storage.Region, "Storage region")
	flags.String("access-key", "", "Access key")
	flags.String("secret-key", "", "Secret key")
	flags.Bool("use-ssl", defaults.Storage.UseSSL, "Use HTTPS")
	flags.Bool("path-style", defaults.Storage.PathStyle, "Use path-style bucket addressing")
	flags.Bool("directory-bucket", defaults.Storage.DirectoryBucket, "Sort listings from buckets that do not list in key order (aws)")
	flags.Int("page-size", defaults.Storage.PageSize, "Keys per listing request")
	flags.String("validation-threshold", "", "Validate buckets for client libraries older than this version")
	flags.String("log-level", defaults.Log.Level, "Log level (debug|info|warn|error)")
	flags.String("log-format", defaults.Log.Format, "Log format (console|json)")

	cmd.AddCommand(
		a.lsCmd(),
		a.catCmd(),
		a.duCmd(),
		a.rmCmd(),
		a.existsCmd(),
		versionCmd(),
	)

	return cmd
}

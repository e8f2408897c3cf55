package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/billy"
	"github.com/jmgilman/objfs/fs/composite"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/awsv2"
	"github.com/jmgilman/objfs/fs/s3/minio"
	"github.com/jmgilman/objfs/internal/config"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// skipSetup marks commands that run without a filesystem.
const skipSetup = "objfs/skip-setup"

// app holds global flag values and the state built from them.
type app struct {
	configPath  string
	jsonErrors  bool
	showMetrics bool
	concurrency int

	cfg      *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	fs       core.FS

	// newClient builds the object storage client; replaced in tests.
	newClient func(ctx context.Context, cfg *config.Config) (s3.Client, error)
}

func newApp() *app {
	return &app{newClient: newStorageClient}
}

// run executes the CLI and returns the process exit code.
func (a *app) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	if a.showMetrics && a.registry != nil {
		if merr := metrics.WriteText(stderr, a.registry); merr != nil {
			a.printError(stderr, merr)
		}
	}

	if err != nil {
		a.printError(stderr, err)
		return 1
	}
	return 0
}

func (a *app) printError(w io.Writer, err error) {
	if a.jsonErrors {
		_ = json.NewEncoder(w).Encode(errors.ToJSON(err))
		return
	}
	fmt.Fprintf(w, "objfs: %v\n", err)
}

// setup loads configuration with priority defaults < file < env < flags and
// builds the filesystem.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipSetup] == "true" || cmd.Name() == "help" {
		return nil
	}
	if a.concurrency < 1 {
		return errors.Newf(errors.CodeInvalidInput, "concurrency must be at least 1, got %d", a.concurrency)
	}

	cfg, err := config.NewLoader(a.configPath).Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	a.logger = logging.NewLogger(logCfg)

	a.registry = prometheus.NewRegistry()
	m, err := metrics.New(a.registry)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to register metrics")
	}

	client, err := a.newClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	remote, err := s3.New(client, s3.Config{
		ValidationThreshold: validationThreshold(cfg.Storage),
		Logger:              a.logger,
		Metrics:             m,
	})
	if err != nil {
		return err
	}
	local := billy.NewLocal(billy.WithLogger(a.logger), billy.WithMetrics(m))

	a.fs = composite.New(remote, local)
	a.logger.Debug(cmd.Context(), "configured storage",
		"backend", cfg.Storage.Backend,
		"client_version", client.Version())
	return nil
}

// validationThreshold returns the configured threshold, or the backend's own
// when none is set. Client versions are only comparable within a backend.
func validationThreshold(sc config.StorageConfig) string {
	if sc.ValidationThreshold != "" {
		return sc.ValidationThreshold
	}
	if sc.Backend == config.BackendAWS {
		return awsv2.ValidationThreshold
	}
	return ""
}

// newStorageClient builds the configured backend's client.
func newStorageClient(ctx context.Context, cfg *config.Config) (s3.Client, error) {
	sc := cfg.Storage
	switch sc.Backend {
	case config.BackendMinIO:
		return minio.New(minio.Config{
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			Region:    sc.Region,
			UseSSL:    sc.UseSSL,
			PathStyle: sc.PathStyle,
			PageSize:  sc.PageSize,
		})
	case config.BackendAWS:
		api, err := awsv2.NewAPI(ctx, awsv2.Options{
			Region:       sc.Region,
			Endpoint:     sc.Endpoint,
			AccessKey:    sc.AccessKey,
			SecretKey:    sc.SecretKey,
			UsePathStyle: sc.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return awsv2.New(awsv2.Config{
			API:       api,
			PageSize:  int32(sc.PageSize), //nolint:gosec // at most config.MaxPageSize
			Unordered: sc.DirectoryBucket,
		})
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown storage backend %q", sc.Backend)
	}
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	strs := map[string]*string{
		"backend":              &cfg.Storage.Backend,
		"endpoint":             &cfg.Storage.Endpoint,
		"region":               &cfg.Storage.Region,
		"access-key":           &cfg.Storage.AccessKey,
		"secret-key":           &cfg.Storage.SecretKey,
		"validation-threshold": &cfg.Storage.ValidationThreshold,
		"log-level":            &cfg.Log.Level,
		"log-format":           &cfg.Log.Format,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to read flag")
		}
		*dst = v
	}

	bools := map[string]*bool{
		"use-ssl":          &cfg.Storage.UseSSL,
		"path-style":       &cfg.Storage.PathStyle,
		"directory-bucket": &cfg.Storage.DirectoryBucket,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to read flag")
		}
		*dst = v
	}

	if flags.Changed("page-size") {
		v, err := flags.GetInt("page-size")
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to read flag")
		}
		cfg.Storage.PageSize = v
	}
	return nil
}

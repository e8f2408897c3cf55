package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/s3/minio"
)

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls PATTERN...",
		Short: "List files matching patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer func() { _ = out.Flush() }()

			for _, pattern := range args {
				for p, err := range a.fs.Ls(cmd.Context(), pattern) {
					if err != nil {
						return err
					}
					fmt.Fprintln(out, p)
				}
			}
			return nil
		},
	}
}

func (a *app) catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat PATTERN...",
		Short: "Print the decompressed contents of files matching patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer func() { _ = out.Flush() }()

			for _, pattern := range args {
				for line, err := range a.fs.Cat(cmd.Context(), pattern) {
					if err != nil {
						return err
					}
					if _, err := out.Write(line); err != nil {
						return errors.Wrap(err, errors.CodeInternal, "failed to write output")
					}
				}
			}
			return nil
		},
	}
}

func (a *app) duCmd() *cobra.Command {
	var total bool

	cmd := &cobra.Command{
		Use:   "du PATTERN...",
		Short: "Print the total size in bytes of files matching each pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]uint64, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.concurrency)
			for i, pattern := range args {
				g.Go(func() error {
					n, err := a.fs.Du(ctx, pattern)
					sizes[i] = n
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var sum uint64
			for i, pattern := range args {
				fmt.Fprintf(out, "%d\t%s\n", sizes[i], pattern)
				sum += sizes[i]
			}
			if total {
				fmt.Fprintf(out, "%d\ttotal\n", sum)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&total, "total", "c", false, "Also print the grand total")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm PATH...",
		Short: "Remove files; patterns are not expanded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := a.removeAll(cmd.Context(), args)

			var failed []error
			for i, p := range args {
				if errs[i] != nil {
					a.printError(cmd.ErrOrStderr(), errs[i])
					failed = append(failed, errs[i])
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p)
			}

			if len(failed) > 0 {
				return errors.Newf(errors.GetCode(failed[0]), "%d of %d removals failed", len(failed), len(args))
			}
			return nil
		},
	}
}

// removeAll removes every path, at most a.concurrency at a time. A failure
// does not stop the remaining removals.
func (a *app) removeAll(ctx context.Context, paths []string) []error {
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			errs[i] = a.fs.Remove(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}

func (a *app) existsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists PATH",
		Short: "Print whether a file exists at exactly PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.fs.Exists(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	v := version
	if v == "" {
		v = "(devel)"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		}
	}

	fmt.Fprintf(w, "objfs %s\n", v)
	fmt.Fprintf(w, "minio-go %s\n", orUnknown(minio.LibraryVersion()))
	fmt.Fprintf(w, "aws-sdk-go-v2 %s\n", aws.SDKVersion)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

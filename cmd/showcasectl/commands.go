package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dimitrije/showcase-api/internal/config"
	"github.com/dimitrije/showcase-api/internal/database"
	"github.com/dimitrije/showcase-api/internal/fallback"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "showcasectl",
		Short:        "Operator tools for the showcase API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.FallbackPath, "fallback", cfg.FallbackPath, "path to the local fallback store")
	root.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "remote backend connection string")

	root.AddCommand(newFallbackCmd(cfg), newProbeCmd(cfg))
	return root
}

func newFallbackCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fallback",
		Short: "Inspect or clear the local fallback store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List stored collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(store *fallback.Store) error {
				keys, err := store.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	})

	var output string
	dump := &cobra.Command{
		Use:   "dump <resource>",
		Short: "Print a stored collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(store *fallback.Store) error {
				records, err := store.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if records == nil {
					return fmt.Errorf("no collection stored for %q", args[0])
				}
				return writeRecords(cmd.OutOrStdout(), records, output)
			})
		},
	}
	dump.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.AddCommand(dump)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear [resource]",
		Short: "Remove one stored collection, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(store *fallback.Store) error {
				if len(args) == 0 {
					if err := store.ClearAll(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "cleared all collections")
					return nil
				}
				if !models.IsResource(args[0]) {
					return fmt.Errorf("unknown resource %q", args[0])
				}
				if err := store.Clear(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}

func newProbeCmd(cfg *config.Config) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether the remote backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := database.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			start := time.Now()
			if err := db.Ping(ctx); err != nil {
				return fmt.Errorf("remote backend unreachable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "remote backend reachable (%s)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "give up after this long")
	return cmd
}

func withStore(cfg *config.Config, fn func(*fallback.Store) error) error {
	store, err := fallback.Open(cfg.FallbackPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func writeRecords(w io.Writer, records []models.Record, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tta-cards/internal/config"
	handlers "tta-cards/internal/handlers/http"
	"tta-cards/internal/handlers/cli"
	"tta-cards/internal/models"
	"tta-cards/internal/usecases"
)

var (
	configPath string
	seed       uint64
)

func main() {
	// .env é opcional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "error: %v\n", err)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tta",
		Short:         "Open TTA booster packs and browse your collection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config/config.yaml or ./config.yaml)")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "rng seed for pack draws, 0 picks one at random")

	root.AddCommand(serveCmd(), openCmd(), summaryCmd(), listCmd(), resetCmd())
	return root
}

// withApp carrega a config, monta o app e executa fn com ele
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)

	a, err := newApp(cmd.Context(), cfg, logger, seed)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				color.Cyan("TTA cards on %s (catalog %s, storage %s)",
					a.cfg.Server.Address, a.catalog.Source(), a.cfg.Storage.Driver)

				// aquece o catálogo pra avisar de raridades vazias já na subida
				if _, err := a.useCases.Pools(cmd.Context()); err != nil {
					a.logger.Error("catalog not ready", "error", err)
				}

				h := handlers.New(a.useCases, handlers.Options{
					Mode:           a.cfg.Server.Mode,
					AllowedOrigins: a.cfg.Server.Cors.AllowedOrigins,
					ImagesDir:      a.cfg.Server.ImagesDir,
				}, a.logger)
				return h.Listen(cmd.Context(), a.cfg.Server.Address)
			})
		},
	}
}

func openCmd() *cobra.Command {
	var fast bool
	var count int

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open booster packs with a terminal reveal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			return withApp(cmd, func(a *app) error {
				term := cli.New(cmd.OutOrStdout(), fast)
				for i := range count {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					if _, err := a.useCases.OpenBooster(cmd.Context(), term.Reveal); err != nil {
						if errors.Is(err, models.ErrEmptyPool) {
							return fmt.Errorf("cannot open a pack, the catalog is missing a tier: %w", err)
						}
						return err
					}
					if cmd.Context().Err() != nil {
						fmt.Fprintln(cmd.ErrOrStderr(), "\ninterrupted, opened packs are saved")
						return nil
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&fast, "fast", false, "skip the reveal pauses")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of packs to open")
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show owned copies and unique cards per rarity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				rows, err := a.useCases.Summary(cmd.Context())
				if err != nil {
					return err
				}
				cli.New(cmd.OutOrStdout(), true).PrintSummary(rows)
				return nil
			})
		},
	}
}

func listCmd() *cobra.Command {
	var rarity, search, sort string
	var owned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards of one rarity with owned counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, ok := models.ParseRarity(rarity)
			if !ok {
				return fmt.Errorf("unknown rarity %q", rarity)
			}
			q := models.ListQuery{
				Rarity:    r,
				Search:    search,
				OwnedOnly: owned,
				Sort:      usecases.ParseSortMode(sort),
			}
			return withApp(cmd, func(a *app) error {
				entries, err := a.useCases.ListCards(cmd.Context(), q)
				if err != nil {
					return err
				}
				cli.New(cmd.OutOrStdout(), true).PrintList(entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&rarity, "rarity", "r", string(models.Common), "rarity tab")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive name filter")
	cmd.Flags().BoolVar(&owned, "owned", false, "only cards with at least one copy")
	cmd.Flags().StringVar(&sort, "sort", string(models.SortNameAsc), "name-asc, name-desc, count-desc or count-asc")
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the whole collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				term := cli.New(cmd.OutOrStdout(), true)
				if !yes && !term.Confirm(cmd.InOrStdin(), "Clear your entire collection?") {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				if err := a.useCases.ClearCollection(cmd.Context()); err != nil {
					return err
				}
				color.Green("Collection cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

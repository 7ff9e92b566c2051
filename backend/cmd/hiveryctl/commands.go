package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hivery/backend/internal/bootstrap"
	"hivery/backend/internal/importer"
	"hivery/backend/pkg/config"
	"hivery/backend/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var (
		env      string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "hiveryctl",
		Short:         "Offline tooling for the Hivery dataset",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(env, logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "logging environment (development|production)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum log level")

	rootCmd.AddCommand(newValidateCmd(), newGenFoodsCmd(), newResetCmd())
	return rootCmd
}

// --- validate ---

func newValidateCmd() *cobra.Command {
	var files importer.Files

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the full import pipeline without a store and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := importer.New(nil, logger.Named("importer")).Import(cmd.Context(), files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run:          %s\n", summary.RunID)
			fmt.Fprintf(out, "companies:    %d\n", summary.Companies)
			fmt.Fprintf(out, "people:       %d\n", summary.People)
			fmt.Fprintf(out, "foods:        %d\n", summary.Foods)
			fmt.Fprintf(out, "friendships:  %d\n", summary.Friendships)
			fmt.Fprintf(out, "one-sided:    %d\n", summary.Claims.OneSided)
			fmt.Fprintf(out, "dangling:     %d\n", summary.Claims.Dangling)
			return nil
		},
	}
	cmd.Flags().StringVar(&files.Companies, "companies", "data/companies.json", "companies file")
	cmd.Flags().StringVar(&files.People, "people", "data/people.json", "people file")
	cmd.Flags().StringVar(&files.Foods, "foods", "data/foods.json", "food category file")
	return cmd
}

// --- gen-foods ---

func newGenFoodsCmd() *cobra.Command {
	var peoplePath, outPath string

	cmd := &cobra.Command{
		Use:   "gen-foods",
		Short: "Write a food category file listing every favourite food, to be classified by hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(peoplePath)
			if err != nil {
				return err
			}
			defer f.Close()

			people, err := importer.ParsePeople(f)
			if err != nil {
				return err
			}
			d, err := importer.DiscoverFoods(people)
			if err != nil {
				return err
			}

			payload, err := json.MarshalIndent(d.Vocabulary(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, append(payload, '\n'), 0o644); err != nil {
				return err
			}

			if d.EmptyNames > 0 {
				logger.Get().Warn("Skipped empty food names", zap.Int("count", d.EmptyNames))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# citizens: %d\n", d.People)
			fmt.Fprintf(out, "# foods: %d written to %s\n", len(d.Foods), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&peoplePath, "people", "data/people.json", "people file to scan")
	cmd.Flags().StringVar(&outPath, "out", "foods.json", "category file to write")
	return cmd
}

// --- reset ---

func newResetCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every imported entity from the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if !skipConfirm {
				fmt.Fprintf(cmd.OutOrStdout(), "This will DELETE ALL DATA from the %s store. Continue? (yes/no): ", cfg.StoreBackend)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "yes" && answer != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			st, err := bootstrap.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store reset.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

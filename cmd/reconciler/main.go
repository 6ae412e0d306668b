package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"account-reconciler/internal/config"
	"account-reconciler/internal/domain"
	"account-reconciler/internal/gateway"
	"account-reconciler/internal/logger"
	"account-reconciler/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd represents the reconciler command.
var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Reconcile accounts marked for cancellation against reference lists",
	Long: `Reconciler checks every account of a main CSV list against one or more
reference CSV lists. Matches are written per reference file as matches_<file>,
accounts absent from every reference list go to not_found_accounts.csv.

Files with the columns id, isCanceled, name and regionCode are read from the
id column; any other file is read from its first column.

Examples:
  # Use the configured defaults (data/csv)
  reconciler

  # Explicit files
  reconciler --main cancel.csv --reference active.csv,canceled.csv --output results`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReconcile,
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cfg := &logger.Config{Level: "debug", Format: "console"}
		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	mainPath := cfg.Input.MainPath()
	referencePaths := cfg.Input.ReferencePaths()
	outputPath := cfg.Input.OutputPath()

	l.Info("Starting account reconciliation",
		zap.String("main", mainPath),
		zap.Strings("references", referencePaths),
		zap.String("output_dir", outputPath),
	)

	// --- Dependency Injection ---
	repo := gateway.NewCSVAccountRepository(l)
	writer := gateway.NewCSVResultWriter(l)
	reconciliationUseCase := usecase.NewReconciliationUseCase(repo, writer, l)

	summary, err := reconciliationUseCase.Run(ctx, mainPath, referencePaths, outputPath)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	logSummary(l, summary, referencePaths)

	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON summary: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

// logSummary logs the match count of every reference file in the order the
// files were given, followed by the not-found count.
func logSummary(l *zap.Logger, summary *domain.Summary, referencePaths []string) {
	seen := make(map[domain.Source]bool, len(referencePaths))
	for _, path := range referencePaths {
		source := domain.Source(filepath.Base(path))
		count, ok := summary.MatchesBySource[source]
		if !ok || seen[source] {
			continue
		}
		seen[source] = true
		l.Info("Matching accounts", zap.String("source", string(source)), zap.Int("count", count))
	}
	l.Info("Accounts not found in any file", zap.Int("count", summary.NotFound))
}

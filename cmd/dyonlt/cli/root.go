// Package cli wires the cobra command tree for dyonlt, grounded on the
// root/subcommand shape of the teacher pack's own demo CLI
// (termfx-morfx/demo/cmd/main.go): a bare root command plus one
// subcommand per operation.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Root builds the dyonlt command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "dyonlt",
		Short: "Lifetime and type-check pass for dyon-lite programs",
		Long:  "dyonlt resolves variable references, validates lifetime constraints and bridges to a type checker over a parsed program tree.",
	}

	root.AddCommand(newCheckCmd())
	return root
}

// logLevel reads DYONLT_LOG_LEVEL (set directly or via .env, see
// main.go's godotenv.Load) and returns the matching slog.Level,
// defaulting to Info.
func logLevel() slog.Level {
	switch os.Getenv("DYONLT_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
}

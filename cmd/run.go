package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikhilr/prepmock/internal/app"
	"github.com/nikhilr/prepmock/internal/contentgen"
	"github.com/nikhilr/prepmock/internal/llm"
	"github.com/nikhilr/prepmock/internal/store"
)

// runApp opens the store, builds the content adapter, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Tests will use the built-in offline question set.")
		// An exhausted mock behaves like an unreachable provider, so
		// the adapter serves its offline fallbacks.
		provider = llm.NewMockProvider()
	}

	adapter := contentgen.New(provider, contentgen.DefaultConfig())
	return app.Run(adapter, st)
}

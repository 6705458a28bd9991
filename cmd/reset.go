package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilr/prepmock/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved session and cached questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		if err := s.SnapshotRepo().Delete(ctx); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		if err := s.QuestionCache().Clear(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Saved session and question cache discarded. Past results are kept.")
		return nil
	},
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikhilr/prepmock/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the offline question cache",
}

var cacheCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many questions are cached",
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

		n, err := s.QuestionCache().Count(context.Background())
		if err != nil {
			return fmt.Errorf("count cached questions: %w", err)
		}
		if n == 0 {
			fmt.Println("The question cache is empty.")
			return nil
		}
		fmt.Printf("%d questions cached.\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached questions",
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

		if err := s.QuestionCache().Clear(context.Background()); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Question cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCountCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikhilr/prepmock/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show past test results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		results, err := s.ResultRepo().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No tests taken yet.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %9s  %9s  %11s  %7s\n",
			"Date", "Mode", "Score", "Accuracy", "Attempted", "Time")
		fmt.Println(strings.Repeat("─", 72))

		var bestScore float64
		for _, r := range results {
			if r.Score > bestScore {
				bestScore = r.Score
			}
			fmt.Printf("%-19s  %-8s  %9.2f  %8.2f%%  %5d / %3d  %4d:%02d\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Config.Mode,
				r.Score,
				r.Accuracy,
				r.Attempted,
				r.TotalQuestions,
				r.ElapsedSeconds/60,
				r.ElapsedSeconds%60,
			)
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("Tests: %d    Best score: %.2f\n", len(results), bestScore)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
}

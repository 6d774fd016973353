package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List learned patterns",
		Long:  "List learned coding patterns, most recently used first.",
		Run:   runPatterns,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	patterns, err := s.Patterns(cmd.Context())
	if err != nil {
		exitErr("patterns", err)
	}
	if limit > 0 && len(patterns) > limit {
		patterns = patterns[:limit]
	}

	b, _ := json.MarshalIndent(patterns, "", "  ")
	fmt.Println(string(b))
}

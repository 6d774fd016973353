package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the newest entries",
		Run:   runRecent,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results (default: config query.recent_limit)")

	RootCmd.AddCommand(cmd)
}

func runRecent(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = loadConfig().Query.RecentLimit
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Recent(cmd.Context(), limit)
	if err != nil {
		exitErr("recent", err)
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search entry content by keyword",
		Long:  "Case-insensitive substring search over entry content.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().String("language", "", "Filter by language")
	cmd.Flags().IntP("limit", "l", 0, "Max results (default: config query.limit)")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	language, _ := cmd.Flags().GetString("language")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	if limit == 0 {
		limit = loadConfig().Query.Limit
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Query:    query,
		Language: language,
		Limit:    limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}

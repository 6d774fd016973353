package cli

import (
	"encoding/json"
	"fmt"

	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query entries by language, file, or kind",
		Long:  "Query entries matching all given filters, most important first, then most recent.",
		Run:   runQuery,
	}

	cmd.Flags().String("language", "", "Filter by language")
	cmd.Flags().String("file", "", "Filter by file path")
	cmd.Flags().StringSlice("kind", nil, "Filter by kind (repeatable or comma-separated)")
	cmd.Flags().IntP("limit", "l", 0, "Max results (default: config query.limit)")

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) {
	language, _ := cmd.Flags().GetString("language")
	filePath, _ := cmd.Flags().GetString("file")
	kindStrs, _ := cmd.Flags().GetStringSlice("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit == 0 {
		limit = loadConfig().Query.Limit
	}

	var kinds []model.Kind
	for _, k := range kindStrs {
		kinds = append(kinds, model.Kind(k))
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Query(cmd.Context(), store.QueryParams{
		Language: language,
		FilePath: filePath,
		Kinds:    kinds,
		Limit:    limit,
	})
	if err != nil {
		exitErr("query", err)
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}

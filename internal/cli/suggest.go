package cli

import (
	"encoding/json"
	"fmt"

	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest relevant context for the current file",
		Long:  "Rank learned patterns and recent mistakes against the editing context.",
		Run:   runSuggest,
	}

	cmd.Flags().String("file", "", "File being edited")
	cmd.Flags().String("language", "", "Language of the file")

	RootCmd.AddCommand(cmd)
}

func runSuggest(cmd *cobra.Command, args []string) {
	filePath, _ := cmd.Flags().GetString("file")
	language, _ := cmd.Flags().GetString("language")

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	suggestions, err := s.Suggestions(cmd.Context(), store.SuggestParams{
		FilePath: filePath,
		Language: language,
	})
	if err != nil {
		exitErr("suggest", err)
	}

	if len(suggestions) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(suggestions, "", "  ")
	fmt.Println(string(b))
}

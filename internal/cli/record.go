package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qoder-labs/devmemory/internal/model"
	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "record [content]",
		Short: "Record a memory entry",
		Long:  "Record a memory entry. Content can be a positional arg or piped via stdin.",
		Run:   runRecord,
	}

	cmd.Flags().String("kind", "interaction", "Kind: interaction, mistake, pattern, preference, success")
	cmd.Flags().String("file", "", "File path the entry is about")
	cmd.Flags().String("language", "", "Programming language")
	cmd.Flags().StringP("workspace", "w", "", "Workspace folder")
	cmd.Flags().IntP("importance", "i", 5, "Importance 1..10")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")

	RootCmd.AddCommand(cmd)
}

func runRecord(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	filePath, _ := cmd.Flags().GetString("file")
	language, _ := cmd.Flags().GetString("language")
	workspace, _ := cmd.Flags().GetString("workspace")
	importance, _ := cmd.Flags().GetInt("importance")
	tagsStr, _ := cmd.Flags().GetString("tags")

	// Get content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("record", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var tags []string
	if tagsStr != "" {
		for _, t := range strings.Split(tagsStr, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entry, err := s.Insert(cmd.Context(), store.InsertParams{
		Kind:       model.Kind(kind),
		Content:    strings.TrimSpace(content),
		FilePath:   filePath,
		Language:   language,
		Workspace:  workspace,
		Importance: importance,
		Tags:       tags,
	})
	if err != nil {
		exitErr("record", err)
	}

	b, _ := json.Marshal(entry)
	fmt.Println(string(b))
}

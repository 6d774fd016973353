package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/qoder-labs/devmemory/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries and patterns from JSON",
		Long:  "Import a dump from stdin. Expects the format produced by export. Existing rows are kept.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var data store.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	result, err := s.Import(cmd.Context(), &data)
	if err != nil {
		exitErr("import", err)
	}

	b, _ := json.Marshal(result)
	fmt.Println(string(b))
}

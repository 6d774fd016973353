package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List workspace folders seen in the store",
		Run:   runWorkspaces,
	}

	RootCmd.AddCommand(cmd)
}

func runWorkspaces(cmd *cobra.Command, args []string) {
	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.Workspaces(cmd.Context())
	if err != nil {
		exitErr("workspaces", err)
	}

	b, _ := json.MarshalIndent(rows, "", "  ")
	fmt.Println(string(b))
}

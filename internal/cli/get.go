package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a memory by key",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	entry, err := m.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "not found: %s\n", args[0])
		os.Exit(1)
	}

	b, _ := json.MarshalIndent(entry, "", "  ")
	fmt.Println(string(b))
}

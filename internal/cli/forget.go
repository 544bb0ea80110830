package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forget [key]",
		Short: "Delete a memory by key",
		Args:  cobra.ExactArgs(1),
		Run:   runForget,
	}

	RootCmd.AddCommand(cmd)
}

func runForget(cmd *cobra.Command, args []string) {
	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	deleted, err := m.Forget(cmd.Context(), args[0])
	if err != nil {
		exitErr("forget", err)
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "not found: %s\n", args[0])
		os.Exit(1)
	}

	fmt.Printf("forgot %s\n", args[0])
}

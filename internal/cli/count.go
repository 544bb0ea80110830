package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count stored memories",
		Run:   runCount,
	}

	RootCmd.AddCommand(cmd)
}

func runCount(cmd *cobra.Command, args []string) {
	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	n, err := m.Count(cmd.Context())
	if err != nil {
		exitErr("count", err)
	}
	fmt.Println(n)
}

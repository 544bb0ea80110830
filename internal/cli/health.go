package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the memory database is reachable",
		Run:   runHealth,
	}

	RootCmd.AddCommand(cmd)
}

func runHealth(cmd *cobra.Command, args []string) {
	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	if !m.HealthCheck(cmd.Context()) {
		fmt.Println("unhealthy")
		os.Exit(1)
	}
	fmt.Println("ok")
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeroclaw/memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall [query]",
		Short: "Recall memories relevant to a query",
		Long: "Search local memory for the query. When local results are thin, the\n" +
			"lucid distributed-context tool is consulted and its entries merged in.",
		Args: cobra.MinimumNArgs(1),
		Run:  runRecall,
	}

	cmd.Flags().IntP("limit", "l", 5, "Max results")
	cmd.Flags().Bool("local-only", false, "Skip the distributed fallback")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	localOnly, _ := cmd.Flags().GetBool("local-only")
	query := strings.Join(args, " ")

	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	var results []model.Entry
	if localOnly {
		results, err = s.Recall(cmd.Context(), query, limit)
	} else {
		results, err = m.Recall(cmd.Context(), query, limit)
	}
	if err != nil {
		exitErr("recall", err)
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}

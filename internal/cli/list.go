package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeroclaw/memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored memories, newest first",
		Run:   runList,
	}

	cmd.Flags().StringP("category", "c", "", "Filter by category")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	categoryStr, _ := cmd.Flags().GetString("category")

	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	var category *model.Category
	if categoryStr != "" {
		c := model.ParseCategory(categoryStr)
		category = &c
	}

	entries, err := m.List(cmd.Context(), category)
	if err != nil {
		exitErr("list", err)
	}

	if len(entries) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}

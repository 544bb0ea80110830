package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeroclaw/memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export memories as JSON",
		Long:  "Export all memories as a JSON array, to a file or stdout.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("category", "c", "", "Only export this category")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	categoryStr, _ := cmd.Flags().GetString("category")

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var category *model.Category
	if categoryStr != "" {
		c := model.ParseCategory(categoryStr)
		category = &c
	}

	entries, err := s.ExportAll(cmd.Context(), category)
	if err != nil {
		exitErr("export", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		exitErr("export", err)
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], append(b, '\n'), 0o644); err != nil {
			exitErr("export", err)
		}
		fmt.Fprintf(os.Stderr, "exported %d entries to %s\n", len(entries), args[0])
		return
	}
	fmt.Println(string(b))
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeroclaw/memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "store [content]",
		Short: "Store a memory",
		Long:  "Store a memory under a key. Content can be a positional arg or piped via stdin.",
		Run:   runStore,
	}

	cmd.Flags().StringP("key", "k", "", "Key (required)")
	cmd.Flags().StringP("category", "c", "core", "Category: core, daily, conversation, or a custom label")

	cmd.MarkFlagRequired("key")

	RootCmd.AddCommand(cmd)
}

func runStore(cmd *cobra.Command, args []string) {
	key, _ := cmd.Flags().GetString("key")
	categoryStr, _ := cmd.Flags().GetString("category")

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
		exitErr("store", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	m, s, err := openMemory()
	if err != nil {
		exitErr("open memory", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := m.Store(ctx, key, strings.TrimSpace(content), model.ParseCategory(categoryStr)); err != nil {
		exitErr("store", err)
	}
	// Let the background lucid sync finish before the process exits.
	m.Flush()

	entry, err := m.Get(ctx, key)
	if err != nil {
		exitErr("store", err)
	}
	b, _ := json.Marshal(entry)
	fmt.Println(string(b))
}

package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and manage past uploads",
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryDeleteCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a page of the upload history",
		RunE: func(_ *cobra.Command, _ []string) error {
			items, err := client.History()
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			mgr := history.New()
			token := mgr.BeginReload()
			mgr.FinishReload(token, items, nil)
			mgr.SetPage(page)

			if mgr.Len() == 0 {
				warn("No upload history yet")
				return nil
			}

			header("Upload history — page %d of %d (%d items)",
				mgr.Page(), mgr.PageCount(), mgr.Len())
			for _, item := range mgr.PageItems() {
				when := time.Unix(item.CreatedAt, 0).Format("2006-01-02 15:04")
				fmt.Printf("  %-10s  %-12s  %-28s  %s\n",
					color.HiBlackString(shortID(item.ID)),
					color.CyanString(item.Provider.Label()),
					truncate(item.OriginalName, 28),
					item.URL)
				fmt.Printf("  %-10s  %s\n", "", color.HiBlackString(when))
			}
			fmt.Println()
			fmt.Println("  " + renderPageStrip(mgr))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (clamped into range)")
	return cmd
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry (and its provider-side object)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id := args[0]

			// The daemon needs url and provider to release the
			// remote object, so look the item up first.
			items, err := client.History()
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			var target *backend.HistoryItem
			for i := range items {
				if items[i].ID == id || shortID(items[i].ID) == id {
					target = &items[i]
					break
				}
			}
			if target == nil {
				// Deleting an already-deleted id is a no-op.
				warn("No history entry %s — nothing to delete", id)
				return nil
			}

			if err := client.DeleteHistoryItem(target.ID, target.URL, target.Provider); err != nil {
				if errors.Is(err, backend.ErrNotFound) {
					warn("Entry %s already deleted", id)
					return nil
				}
				return fmt.Errorf("deleting %s: %w", id, err)
			}
			ok("Deleted %s (%s)", target.OriginalName, target.Provider.Label())
			return nil
		},
	}
}

// renderPageStrip renders the elided page numbers, e.g. 1 … 4 [5] 6 … 12.
func renderPageStrip(mgr *history.Manager) string {
	var parts []string
	for _, p := range mgr.PageNumbers() {
		switch {
		case p == history.Ellipsis:
			parts = append(parts, "…")
		case p == mgr.Page():
			parts = append(parts, color.YellowString("[%d]", p))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return s[:n-1] + "…"
}

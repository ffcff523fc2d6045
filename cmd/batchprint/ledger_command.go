package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"batchprint/internal/config"
	"batchprint/internal/ledger"
)

func newLedgerCommand(configFlag *string) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the dispatch ledger",
	}

	ledgerCmd.AddCommand(newLedgerListCommand(configFlag))
	ledgerCmd.AddCommand(newLedgerStatsCommand(configFlag))

	return ledgerCmd
}

func newLedgerListCommand(configFlag *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent print dispatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLedger(*configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list dispatches: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No dispatches recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.Folder,
					entry.Filename,
					entry.Printer,
					string(entry.Outcome),
					relocationStatus(entry),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Time", "Folder", "File", "Printer", "Outcome", "Relocated"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}

func newLedgerStatsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dispatch counts by outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLedger(*configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("ledger stats: %w", err)
			}

			rows := [][]string{
				{"printed", strconv.Itoa(stats[ledger.OutcomePrinted])},
				{"failed", strconv.Itoa(stats[ledger.OutcomeFailed])},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Outcome", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func relocationStatus(entry *ledger.Entry) string {
	if entry.RelocationPending() {
		return "pending"
	}
	if entry.RelocatedPath != "" {
		return entry.RelocatedPath
	}
	return ""
}

func openLedger(configPath string) (*ledger.Store, error) {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return store, nil
}

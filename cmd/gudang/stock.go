package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runStock(cmd *cobra.Command, _ []string) error {
	_, ledger, err := openWarehouse(cfg, logger)
	if err != nil {
		return err
	}
	r := renderer(cfg)
	r.MaxRunes = 0
	_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Inventory(ledger.Snapshot()))
	return err
}

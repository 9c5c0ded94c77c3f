package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/readings"
)

func readingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readings",
		Short: "Fetch the readings document and report how many it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := readings.New(appCtx.cfg.Readings.URL)
			fmt.Println(client.Describe(cmd.Context()))
			return nil
		},
	}
}

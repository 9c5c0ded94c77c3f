package commands

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/config"
	"github.com/hotprospects/hotprospects/internal/testdata"
)

func seedCmd() *cobra.Command {
	var (
		count int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random prospects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return errors.New("--count must be positive")
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			added, err := testdata.Seed(cmd.Context(), appCtx.repo, count, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d prospect(s)\n", len(added))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "how many prospects to add")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: time based)")
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every prospect",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			n, err := appCtx.maintenance.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d prospect(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(configPath, appCtx.cfg); err != nil {
				return err
			}
			fmt.Println("Configuration written")
			return nil
		},
	}
}

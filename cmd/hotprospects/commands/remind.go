package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/notify"
)

// remind blocks until the reminder fires, then prints it.
func remindCmd() *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "remind <id>",
		Short: "Schedule a reminder to contact a prospect and wait for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := appCtx.repo.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get prospect: %w", err)
			}
			if p == nil {
				return repository.ErrNotFound
			}
			if !cmd.Flags().Changed("delay") {
				delay = appCtx.cfg.Notify.Delay
			}

			sched := notify.NewScheduler(appCtx.cfg.Notify.Enabled, appCtx.log)
			defer sched.Close()
			_, err = sched.Schedule(notify.Request{
				ID:       uuid.NewString(),
				Title:    "Contact " + p.Name,
				Subtitle: p.EmailAddress,
				Sound:    true,
				Delay:    delay,
			})
			if errors.Is(err, notify.ErrNotPermitted) {
				fmt.Println("Notifications are turned off (notify.enabled = false)")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Reminder for %s in %s\n", p.Name, delay)

			select {
			case n := <-sched.Delivered():
				fmt.Printf("\a%s: %s\n", n.Title, n.Subtitle)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 0, "how long to wait (default notify.delay)")
	return cmd
}

package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/notify"
	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
}

func runTUI(ctx context.Context) error {
	cfg := appCtx.cfg
	profile, err := prefs.LoadProfile(cfg.Profile.Path)
	if err != nil {
		// a broken profile file should not keep the app from starting
		appCtx.log.WithError(err).Warn("load profile, using defaults")
		profile = prefs.DefaultProfile()
	}

	notifier := notify.NewScheduler(cfg.Notify.Enabled, appCtx.log)
	defer notifier.Close()

	model := tui.New(ctx, cfg, tui.Services{Prospects: appCtx.prospects, Notifier: notifier}, profile, appCtx.log)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

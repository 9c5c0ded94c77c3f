package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Share prospects and your QR code over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = appCtx.cfg.Share.Addr
			}
			profilePath := appCtx.cfg.Profile.Path
			router := server.NewRouter(&server.Server{
				Prospects: appCtx.prospects,
				Profile:   func() (prefs.Profile, error) { return prefs.LoadProfile(profilePath) },
				QRSize:    appCtx.cfg.Share.QRSize,
				Log:       appCtx.log,
			})
			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				appCtx.log.WithField("addr", addr).Info("share server listening")
				errCh <- srv.ListenAndServe()
			}()
			fmt.Printf("Serving on http://%s\n", addr)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			appCtx.log.Info("share server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default share.addr)")
	return cmd
}

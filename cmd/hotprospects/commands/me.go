package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/qr"
)

func meCmd() *cobra.Command {
	var (
		name   string
		email  string
		export string
	)
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show or edit your profile and its QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appCtx.cfg.Profile.Path
			p, err := prefs.LoadProfile(path)
			if err != nil {
				return err
			}
			changed := false
			if cmd.Flags().Changed("name") {
				p.Name = name
				changed = true
			}
			if cmd.Flags().Changed("email") {
				p.EmailAddress = email
				changed = true
			}
			if changed {
				if err := prefs.SaveProfile(path, p); err != nil {
					return err
				}
			}

			code := qr.Generate(p.Payload())
			if code.Failed() {
				appCtx.log.WithError(code.Err()).Warn("qr generation failed")
			}
			fmt.Printf("%s\n%s\n\n%s\n", p.Name, p.EmailAddress, code.String())

			if export != "" {
				data, err := code.PNG(appCtx.cfg.Share.QRSize)
				if err != nil {
					return fmt.Errorf("export qr: %w", err)
				}
				if err := os.WriteFile(export, data, 0o644); err != nil {
					return fmt.Errorf("export qr: %w", err)
				}
				fmt.Printf("Saved QR code to %s\n", export)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "set your name")
	cmd.Flags().StringVar(&email, "email", "", "set your email address")
	cmd.Flags().StringVar(&export, "png", "", "also write the QR code as PNG to this path")
	return cmd
}

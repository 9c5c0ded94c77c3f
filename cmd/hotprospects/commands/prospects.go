package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hotprospects/hotprospects/internal/prospect"
)

func addCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "add [name] [email]",
		Short: "Add a prospect, or scan one in with --scan",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case payload != "":
				p, err := appCtx.prospects.Scan(ctx, payload)
				if err != nil {
					return err
				}
				fmt.Printf("Scanned %s <%s> (%s)\n", p.Name, p.EmailAddress, p.ID)
			case len(args) == 0:
				p, err := appCtx.prospects.AddSample(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Scanned %s <%s> (%s)\n", p.Name, p.EmailAddress, p.ID)
			default:
				email := ""
				if len(args) == 2 {
					email = args[1]
				}
				p, err := appCtx.prospects.Add(ctx, args[0], email)
				if err != nil {
					return err
				}
				fmt.Printf("Added %s <%s> (%s)\n", p.Name, p.EmailAddress, p.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&payload, "scan", "", "QR payload, name and email separated by a newline or |")
	return cmd
}

func listCmd() *cobra.Command {
	var (
		filter string
		query  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print prospects for a filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := prospect.ParseFilter(filter)
			if err != nil {
				return err
			}
			rows, err := appCtx.prospects.Filtered(cmd.Context(), prospect.And(f.Predicate(), prospect.Search(query)))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Printf("%s\nPeople: %d\n\n", f.Title(), len(rows))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, p := range rows {
				mark := " "
				if p.IsContacted {
					mark = "✓"
				}
				if p.IsPinned {
					mark += "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, p.Name, p.EmailAddress, p.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "everyone", "everyone, contacted or uncontacted")
	cmd.Flags().StringVarP(&query, "search", "s", "", "only rows matching this name or email")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Remove prospects by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.prospects.Delete(cmd.Context(), args...); err != nil {
				return err
			}
			fmt.Printf("Deleted %d prospect(s)\n", len(args))
			return nil
		},
	}
}

func contactCmd() *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "contact <id>...",
		Short: "Mark prospects as contacted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.prospects.SetContacted(cmd.Context(), !undo, args...); err != nil {
				return err
			}
			state := "contacted"
			if undo {
				state = "uncontacted"
			}
			fmt.Printf("Marked %d prospect(s) %s\n", len(args), state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark uncontacted instead")
	return cmd
}

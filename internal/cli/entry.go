package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// entryFlags are shared by entry add and entry update.
type entryFlags struct {
	id          string
	description string
	value       string
	date        string
	categories  []string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "what the entry is for")
	cmd.Flags().StringVar(&f.value, "value", "", "signed amount, e.g. -12.50")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD or RFC 3339 (default today)")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "category label (repeatable, comma separated)")
}

// applyTo overwrites the fields of e whose flags were set on cmd.
func (f *entryFlags) applyTo(cmd *cobra.Command, e *models.LedgerEntry) error {
	if cmd.Flags().Changed("description") {
		e.Description = f.description
	}
	if cmd.Flags().Changed("value") {
		v, err := decimal.NewFromString(f.value)
		if err != nil {
			return fmt.Errorf("%w: value %q is not a number", common.ErrorValidation, f.value)
		}
		e.Value = v
	}
	if cmd.Flags().Changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if cmd.Flags().Changed("category") {
		e.Categories = f.categories
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD or RFC 3339", common.ErrorValidation, s)
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newEntryCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage ledger entries",
	}

	cmd.AddCommand(newEntryAddCommand(s))
	cmd.AddCommand(newEntryUpdateCommand(s))
	cmd.AddCommand(newEntryDeleteCommand(s))
	cmd.AddCommand(newEntryShowCommand(s))
	cmd.AddCommand(newEntryListCommand(s))

	return cmd
}

func newEntryAddCommand(s *session) *cobra.Command {
	f := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a ledger entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := models.LedgerEntry{ID: f.id, Date: today()}
			if err := f.applyTo(cmd, &e); err != nil {
				return err
			}
			added, err := s.app.Entries.Add(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", added.ID)
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&f.id, "id", "", "entry id (generated when omitted)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newEntryUpdateCommand(s *session) *cobra.Command {
	f := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a ledger entry; categories are replaced when given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.app.Entries.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("entry %s: %w", args[0], common.ErrorNotFound)
			}
			if err := f.applyTo(cmd, e); err != nil {
				return err
			}
			updated, err := s.app.Entries.Update(cmd.Context(), *e)
			if err != nil {
				return err
			}
			if updated == nil {
				return fmt.Errorf("entry %s: %w", args[0], common.ErrorNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.ID)
			return nil
		},
	}
	f.bind(cmd)

	return cmd
}

func newEntryDeleteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a ledger entry and its categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.app.Entries.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("entry %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newEntryShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ledger entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.app.Entries.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("entry %s: %w", args[0], common.ErrorNotFound)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:          %s\n", e.ID)
			fmt.Fprintf(w, "Description: %s\n", e.Description)
			fmt.Fprintf(w, "Value:       %s\n", e.Value.StringFixed(2))
			fmt.Fprintf(w, "Date:        %s\n", e.Date.Format(time.RFC3339))
			fmt.Fprintf(w, "Categories:  %s\n", strings.Join(e.Categories, ", "))
			return nil
		},
	}
}

func newEntryListCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ledger entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := s.app.Entries.List(cmd.Context())
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}
}

func printEntries(w io.Writer, entries []models.LedgerEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tVALUE\tDESCRIPTION\tCATEGORIES\tID")
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Value)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Date.Format(time.DateOnly), e.Value.StringFixed(2), e.Description, strings.Join(e.Categories, ","), e.ID)
	}
	fmt.Fprintf(tw, "\t%s\tTOTAL\t\t\n", total.StringFixed(2))
	return tw.Flush()
}

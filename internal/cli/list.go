package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/badge"
	"github.com/diewo77/go-missions/internal/filter"
	"github.com/diewo77/go-missions/internal/listview"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/pages"
)

var terminalColors = map[string]color.Attribute{
	"yellow":  color.FgYellow,
	"cyan":    color.FgCyan,
	"blue":    color.FgBlue,
	"green":   color.FgGreen,
	"magenta": color.FgMagenta,
	"white":   color.FgWhite,
}

func statusLabel(lang string, f mission.Family, s mission.Status) string {
	label := listview.BadgeFor(lang, f, s).Label
	attr, ok := terminalColors[badge.For(f, s).Terminal()]
	if !ok {
		return label
	}
	return color.New(attr).Sprint(label)
}

func listCmd(o *options) *cobra.Command {
	var (
		family string
		bucket string
		state  filter.State
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one status bucket, with the dashboard filters",
		Example: `  missionctl list --family mandat --bucket en-attente-confirmation
  missionctl list --family ordre --bucket mes-ordres --status EN_COURS --from 2024-05-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := o.requireToken()
			if err != nil {
				return err
			}
			f, err := mission.ParseFamily(family)
			if err != nil {
				return err
			}
			p, err := pages.Lookup(f, bucket)
			if err != nil {
				return err
			}
			records, err := o.client(cmd).List(cmd.Context(), token, f, p.Bucket)
			if err != nil {
				return err
			}
			shown := filter.Apply(records, filter.Compose(state, p.Filter))
			return printRecords(cmd.OutOrStdout(), o.lang, f, shown)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&family, "family", string(mission.FamilyMandat), "mandat or ordre")
	fl.StringVar(&bucket, "bucket", "en-cours", "status bucket, e.g. en-attente-confirmation or mes-mandats")
	fl.StringVar(&state.Search, "search", "", "text to look for in reference and objectif")
	fl.StringVar(&state.DateDebut, "from", "", "earliest start date")
	fl.StringVar(&state.DateFin, "to", "", "latest end date")
	fl.StringVar(&state.Statut, "status", "", "status code (mixed buckets)")
	fl.StringVar(&state.CreatedBy, "creator", "", "creator name")
	return cmd
}

func printRecords(out io.Writer, lang string, f mission.Family, records []mission.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, i18n.T(lang, "list.empty"))
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"ID", "REFERENCE", "OBJECTIF", "DATES", "STATUT"}, "\t"))
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Reference,
			listview.Truncate(r.Objectif, 40),
			listview.DateRange(r.DateDebut, r.DateFin),
			statusLabel(lang, f, r.Statut),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, i18n.Tf(lang, "list.count", len(records)))
	return err
}

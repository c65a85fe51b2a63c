package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-vet-office/internal/forms"
	"github.com/Apurer/go-vet-office/internal/selector"
)

func newOwnersCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Look up pet owners",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search owners by name, one row per pet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOwnersSearch(cmd.Context(), env, cmd, strings.Join(args, " "))
		},
	})
	return cmd
}

func runOwnersSearch(ctx context.Context, env *Env, cmd *cobra.Command, query string) error {
	opts := env.Profiles.Owner
	widget := selector.New(env.Backend.SearchOwners, opts, selector.WithLogger(env.Logger), selector.WithContext(ctx))
	defer widget.Unmount()

	state, err := searchNow(ctx, widget, query, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !renderOutcome(out, state.Outcome, opts.MinLength) {
		return nil
	}
	rows := make([][]string, 0, len(state.Candidates))
	for _, c := range state.Candidates {
		rows = append(rows, []string{c.OwnerName, c.ContactNumber, c.Birthdate, c.Pet.Name, c.Pet.Species, c.Pet.Breed})
	}
	renderTable(out, []string{"Owner", "Contact", "Birthdate", "Pet", "Species", "Breed"}, rows)
	return nil
}

// searchNow types query into widget and waits for the search to settle,
// bounded by the widget fetch timeout.
func searchNow[C selector.Candidate](ctx context.Context, widget *selector.Widget[C], query string, opts selector.Options) (selector.State[C], error) {
	widget.Focus()
	widget.Type(query)
	if opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.FetchTimeout+time.Second)
		defer cancel()
	}
	if err := widget.Flush(ctx); err != nil {
		return selector.State[C]{}, err
	}
	return widget.State(), nil
}

func ownerLabel(c forms.OwnerCandidate) string {
	label := c.OwnerName
	if c.Pet.Name != "" {
		label += " / " + c.Pet.Name
		if c.Pet.Species != "" {
			label += " (" + c.Pet.Species + ")"
		}
	}
	if c.ContactNumber != "" {
		label += " - " + c.ContactNumber
	}
	return label
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-vet-office/internal/platform/appstate"
)

func newStateCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show or reset the saved session state",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := env.Store.Snapshot()
			renderTable(cmd.OutOrStdout(), []string{"Key", "Value"}, [][]string{
				{"clinician", st.Clinician},
				{"api", st.APIBaseURL},
				{"recent owners", strings.Join(st.RecentOwners, ", ")},
			})
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Store.Teardown(cmd.Context()); err != nil {
				return err
			}
			success.Fprintln(cmd.OutOrStdout(), "State cleared")
			return nil
		},
	})
	var clinician, url string
	set := &cobra.Command{
		Use:   "set",
		Short: "Save the clinician name or API URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.Store.Update(cmd.Context(), func(st *appstate.State) {
				if cmd.Flags().Changed("clinician") {
					st.Clinician = strings.TrimSpace(clinician)
				}
				if cmd.Flags().Changed("url") {
					st.APIBaseURL = strings.TrimSpace(url)
				}
			})
		},
	}
	set.Flags().StringVar(&clinician, "clinician", "", "clinician name")
	set.Flags().StringVar(&url, "url", "", "API base URL")
	cmd.AddCommand(set)
	return cmd
}

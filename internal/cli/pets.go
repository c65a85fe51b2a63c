package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-vet-office/internal/forms"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

func newPetsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Browse registered pets",
	}
	var owner string
	list := &cobra.Command{
		Use:   "list",
		Short: "List pets, optionally of one owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pets, err := env.Backend.ListPets(cmd.Context(), owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(pets) == 0 {
				notice.Fprintln(out, "No pets found")
				return nil
			}
			renderTable(out, []string{"ID", "Name", "Owner", "Species", "Breed", "Sex", "Status", "Age"}, petRows(pets, age.Deriver{Now: env.Now}))
			return nil
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "exact owner name")
	cmd.AddCommand(list)
	return cmd
}

func petRows(pets []forms.PetCandidate, ages age.Deriver) [][]string {
	rows := make([][]string, 0, len(pets))
	for _, p := range pets {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.OwnerName,
			p.Species,
			p.Breed,
			p.Gender,
			p.ReproductiveStatus,
			ages.Derive(p.DateOfBirth, ""),
		})
	}
	return rows
}

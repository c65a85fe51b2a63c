package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-vet-office/internal/shared/age"
)

// ErrNoAge is returned when no age can be derived from the arguments.
var ErrNoAge = errors.New("cannot derive an age")

func newAgeCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "age <birth> [reference]",
		Short: "Print the age shown for a birth date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference := ""
			if len(args) == 2 {
				reference = args[1]
			}
			derived := age.Deriver{Now: env.Now}.Derive(args[0], reference)
			if derived == "" {
				return fmt.Errorf("%w from %q", ErrNoAge, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), derived)
			return nil
		},
	}
}

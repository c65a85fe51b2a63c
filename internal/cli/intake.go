package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/forms"
	"github.com/Apurer/go-vet-office/internal/selector"
	"github.com/Apurer/go-vet-office/internal/shared/age"
)

const searchAgain = "(search again)"

func newIntakeCommand(env *Env) *cobra.Command {
	var kind, date string
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Fill in and submit a form record interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := recorddomain.ParseKind(kind)
			if err != nil {
				return err
			}
			if strings.TrimSpace(date) == "" {
				date = env.Now().Format(time.DateOnly)
			}
			return runIntake(cmd.Context(), env, cmd.OutOrStdout(), k, date)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(recorddomain.KindAppointment), "appointment|medical_record|shipping_permit|vaccination")
	cmd.Flags().StringVar(&date, "date", "", "form date (default today)")
	return cmd
}

func runIntake(ctx context.Context, env *Env, out io.Writer, kind recorddomain.Kind, date string) error {
	form, err := forms.NewForm(kind, env.Backend, date,
		forms.WithProfiles(*env.Profiles),
		forms.WithLogger(env.Logger),
		forms.WithAgeDeriver(age.Deriver{Now: env.Now}),
		forms.WithSelectorOptions(selector.WithContext(ctx)),
	)
	if err != nil {
		return err
	}
	defer form.Unmount()

	heading.Fprintln(out, fmt.Sprintf("New %s on %s", strings.ReplaceAll(string(kind), "_", " "), form.Date()))
	owner, err := pickOwner(ctx, env, out, form)
	if err != nil {
		return err
	}
	contact, err := env.Prompter.Input("Contact number", form.Fields().ContactNumber)
	if err != nil {
		return err
	}
	form.SetContactNumber(contact)
	if err := pickPet(ctx, env, out, form, owner); err != nil {
		return err
	}
	details, err := askDetails(env, kind)
	if err != nil {
		return err
	}
	if err := form.SetDetails(details); err != nil {
		return err
	}

	renderFields(out, form.Fields())
	rec, err := form.Submission()
	if err != nil {
		return err
	}
	ok, err := env.Prompter.Confirm("Submit this record?", true)
	if err != nil || !ok {
		if err == nil {
			notice.Fprintln(out, "Not submitted")
		}
		return err
	}
	saved, err := env.Backend.SubmitRecord(ctx, uuid.New(), rec)
	if err != nil {
		return err
	}
	if err := env.Store.RememberOwner(ctx, form.Fields().OwnerName); err != nil {
		env.Logger.Warn("could not remember owner", "error", err)
	}
	success.Fprintln(out, fmt.Sprintf("Submitted %s %s", kind, saved.ID))
	return nil
}

// pickOwner runs the owner selector until an owner is selected or a new
// name is confirmed. It returns the selected row, nil for a new owner.
func pickOwner(ctx context.Context, env *Env, out io.Writer, form *forms.Form) (*forms.OwnerCandidate, error) {
	def := ""
	if recent := env.Store.Snapshot().RecentOwners; len(recent) > 0 {
		def = recent[0]
	}
	for {
		query, err := env.Prompter.Input("Owner name", def)
		if err != nil {
			return nil, err
		}
		state, err := searchNow(ctx, form.Owner, query, form.Owner.Options())
		if err != nil {
			return nil, err
		}
		if renderOutcome(out, state.Outcome, form.Owner.Options().MinLength) {
			labels := make([]string, 0, len(state.Candidates)+1)
			for _, c := range state.Candidates {
				labels = append(labels, ownerLabel(c))
			}
			i, err := env.Prompter.Select("Owner", append(labels, searchAgain))
			if err != nil {
				return nil, err
			}
			if i < len(state.Candidates) {
				selected := state.Candidates[i]
				form.Owner.Select(selected)
				return &selected, nil
			}
			continue
		}
		if strings.TrimSpace(query) == "" || state.Outcome == selector.OutcomeIdle {
			continue
		}
		ok, err := env.Prompter.Confirm(fmt.Sprintf("Use %q as a new owner?", strings.TrimSpace(query)), false)
		if err != nil {
			return nil, err
		}
		if ok {
			form.Owner.Close()
			return nil, nil
		}
	}
}

func pickPet(ctx context.Context, env *Env, out io.Writer, form *forms.Form, owner *forms.OwnerCandidate) error {
	def := ""
	if owner != nil {
		def = owner.Pet.Name
	}
	for {
		query, err := env.Prompter.Input("Pet name, species or breed", def)
		if err != nil {
			return err
		}
		state, err := searchNow(ctx, form.Pet, query, form.Pet.Options())
		if err != nil {
			return err
		}
		if renderOutcome(out, state.Outcome, form.Pet.Options().MinLength) {
			labels := make([]string, 0, len(state.Candidates)+1)
			for _, c := range state.Candidates {
				labels = append(labels, petLabel(c))
			}
			i, err := env.Prompter.Select("Pet", append(labels, searchAgain))
			if err != nil {
				return err
			}
			if i < len(state.Candidates) {
				form.Pet.Select(state.Candidates[i])
				return nil
			}
			continue
		}
		if strings.TrimSpace(query) == "" || state.Outcome == selector.OutcomeIdle {
			continue
		}
		ok, err := env.Prompter.Confirm(fmt.Sprintf("Use %q as an unregistered pet?", strings.TrimSpace(query)), false)
		if err != nil {
			return err
		}
		if ok {
			form.Pet.Close()
			return nil
		}
	}
}

func petLabel(c forms.PetCandidate) string {
	parts := []string{}
	for _, p := range []string{c.Species, c.Breed} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, strings.Join(parts, ", "))
}

func askDetails(env *Env, kind recorddomain.Kind) (forms.Details, error) {
	a := asker{p: env.Prompter}
	switch kind {
	case recorddomain.KindAppointment:
		d := forms.AppointmentDetails{
			Reason:       a.input("Reason for visit", ""),
			Veterinarian: a.input("Veterinarian", env.Store.Snapshot().Clinician),
			WalkIn:       a.confirm("Walk-in?", false),
		}
		return d, a.err
	case recorddomain.KindMedicalRecord:
		d := forms.MedicalDetails{
			Weight:    a.input("Weight", ""),
			Diagnosis: a.input("Diagnosis", ""),
			Treatment: a.input("Treatment", ""),
			Remarks:   a.input("Remarks", ""),
		}
		return d, a.err
	case recorddomain.KindShippingPermit:
		d := forms.ShippingDetails{
			Destination: a.input("Destination", ""),
			Carrier:     a.input("Carrier", ""),
			Documents:   splitList(a.input("Documents (comma separated)", "")),
			Remarks:     a.input("Remarks", ""),
		}
		return d, a.err
	case recorddomain.KindVaccination:
		d := forms.VaccinationDetails{
			Vaccines:    splitList(a.input("Vaccines (comma separated)", "")),
			BatchNumber: a.input("Batch number", ""),
			Drive:       a.input("Vaccination drive", ""),
			Remarks:     a.input("Remarks", ""),
		}
		return d, a.err
	default:
		return nil, fmt.Errorf("%w: %q", recorddomain.ErrUnknownKind, kind)
	}
}

// asker stops prompting after the first error.
type asker struct {
	p   Prompter
	err error
}

func (a *asker) input(message, def string) string {
	if a.err != nil {
		return ""
	}
	var out string
	out, a.err = a.p.Input(message, def)
	return strings.TrimSpace(out)
}

func (a *asker) confirm(message string, def bool) bool {
	if a.err != nil {
		return false
	}
	var out bool
	out, a.err = a.p.Confirm(message, def)
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func renderFields(w io.Writer, f forms.PatientFields) {
	renderTable(w, []string{"Field", "Value"}, [][]string{
		{"Owner", f.OwnerName},
		{"Contact", f.ContactNumber},
		{"Owner birthdate", f.OwnerBirthdate},
		{"Pet", f.PetName},
		{"Species", f.Species},
		{"Breed", f.Breed},
		{"Birthday", f.PetBirthday},
		{"Age", f.Age},
		{"Sex", f.Sex},
		{"Reproductive status", f.ReproductiveStatus},
	})
}

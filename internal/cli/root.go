// Package cli implements vetctl, the front-desk command line client of the
// vet office API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Apurer/go-vet-office/internal/clients/http/vetapi"
	recordhttpmapper "github.com/Apurer/go-vet-office/internal/domains/records/adapters/http/mapper"
	recorddomain "github.com/Apurer/go-vet-office/internal/domains/records/domain"
	"github.com/Apurer/go-vet-office/internal/forms"
	"github.com/Apurer/go-vet-office/internal/platform/appstate"
	"github.com/Apurer/go-vet-office/internal/platform/observability"
	"github.com/Apurer/go-vet-office/internal/selector"
)

// DefaultAPIURL is used when neither the flag, the environment nor the
// saved state name an API.
const DefaultAPIURL = "http://localhost:8080"

// Backend is what vetctl needs from the API.
type Backend interface {
	forms.Directory
	SubmitRecord(ctx context.Context, id uuid.UUID, r recorddomain.Record) (*recordhttpmapper.Record, error)
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL    string
	StatePath string
	Profiles  string
	Verbose   bool
}

// Env carries the collaborators of the commands. Zero fields are built
// from the flags before a command runs.
type Env struct {
	Backend  Backend
	Store    *appstate.Store
	Prompter Prompter
	Profiles *selector.Profiles
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewRootCommand creates the root command of vetctl.
func NewRootCommand(env *Env) *cobra.Command {
	if env == nil {
		env = &Env{}
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "vetctl",
		Short:         "Front-desk client of the vet office API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.complete(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", "", "API base URL (default $VETCTL_API_URL, saved state, "+DefaultAPIURL+")")
	cmd.PersistentFlags().StringVar(&opts.StatePath, "state", "", "state file (default under the user config directory)")
	cmd.PersistentFlags().StringVar(&opts.Profiles, "profiles", "", "selector profiles YAML (default $SELECTOR_PROFILES)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newOwnersCommand(env))
	cmd.AddCommand(newPetsCommand(env))
	cmd.AddCommand(newAgeCommand(env))
	cmd.AddCommand(newIntakeCommand(env))
	cmd.AddCommand(newStateCommand(env))

	return cmd
}

// Execute runs vetctl with the process arguments.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand(nil)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), failure.Sprint("error: ", err))
		return 1
	}
	return 0
}

func (e *Env) complete(ctx context.Context, opts *RootOptions, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.Logger == nil {
		level := "warn"
		if opts.Verbose {
			level = "debug"
		}
		e.Logger = observability.NewLogger(stderr, "text", level)
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Store == nil {
		path := opts.StatePath
		if path == "" {
			var err error
			if path, err = appstate.DefaultPath(); err != nil {
				return fmt.Errorf("locate state file: %w", err)
			}
		}
		e.Store = appstate.New(appstate.NewFilePersister(path), appstate.WithLogger(e.Logger))
	}
	if !e.Store.Initialized() {
		if err := e.Store.Init(ctx); err != nil {
			return err
		}
	}
	if e.Profiles == nil {
		profiles, err := loadProfiles(opts.Profiles)
		if err != nil {
			return err
		}
		e.Profiles = &profiles
	}
	if e.Backend == nil {
		client, err := vetapi.NewClient(e.apiURL(opts))
		if err != nil {
			return err
		}
		e.Backend = client
	}
	if e.Prompter == nil {
		e.Prompter = surveyPrompter{}
	}
	return nil
}

func (e *Env) apiURL(opts *RootOptions) string {
	for _, candidate := range []string{opts.APIURL, os.Getenv("VETCTL_API_URL"), e.Store.Snapshot().APIBaseURL} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}
	return DefaultAPIURL
}

func loadProfiles(path string) (selector.Profiles, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("SELECTOR_PROFILES"))
	}
	if path == "" {
		return selector.DefaultProfiles(), nil
	}
	return selector.LoadProfilesFile(path)
}

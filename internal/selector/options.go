package selector

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultFetchTimeout = 10 * time.Second
)

// Options is the configuration a hosting form passes to a widget.
type Options struct {
	MinLength     int           `yaml:"minLength"`
	Debounce      time.Duration `yaml:"debounce"`
	ReferenceDate string        `yaml:"referenceDate,omitempty"`
	Placeholder   string        `yaml:"placeholder,omitempty"`
	// FetchTimeout bounds a single search call. Zero disables the bound.
	FetchTimeout time.Duration `yaml:"fetchTimeout,omitempty"`
}

// OwnerDefaults are the options used by owner selectors.
func OwnerDefaults() Options {
	return Options{
		MinLength:    2,
		Debounce:     DefaultDebounce,
		Placeholder:  "Search owner name",
		FetchTimeout: DefaultFetchTimeout,
	}
}

// PetDefaults are the options used by pet selectors. Pets are already loaded
// for the form, so a single character is enough to filter.
func PetDefaults() Options {
	return Options{
		MinLength:    1,
		Debounce:     DefaultDebounce,
		Placeholder:  "Search pet name, species or breed",
		FetchTimeout: DefaultFetchTimeout,
	}
}

func (o Options) normalized() Options {
	if o.MinLength < 1 {
		o.MinLength = 1
	}
	if o.Debounce < 0 {
		o.Debounce = 0
	}
	if o.FetchTimeout < 0 {
		o.FetchTimeout = 0
	}
	return o
}

// Profiles groups the per-entity widget options.
type Profiles struct {
	Owner Options `yaml:"owner"`
	Pet   Options `yaml:"pet"`
}

// DefaultProfiles returns the built-in owner and pet options.
func DefaultProfiles() Profiles {
	return Profiles{Owner: OwnerDefaults(), Pet: PetDefaults()}
}

// LoadProfiles decodes YAML profiles on top of the defaults; keys absent in
// the document keep their default value.
func LoadProfiles(r io.Reader) (Profiles, error) {
	profiles := DefaultProfiles()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&profiles); err != nil && err != io.EOF {
		return Profiles{}, fmt.Errorf("decode selector profiles: %w", err)
	}
	if err := profiles.Validate(); err != nil {
		return Profiles{}, err
	}
	return profiles, nil
}

// LoadProfilesFile reads profiles from path. A missing file yields the defaults.
func LoadProfilesFile(path string) (Profiles, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfiles(), nil
		}
		return Profiles{}, err
	}
	defer f.Close()
	return LoadProfiles(f)
}

// Validate rejects options a widget cannot honour.
func (p Profiles) Validate() error {
	for name, opts := range map[string]Options{"owner": p.Owner, "pet": p.Pet} {
		if opts.MinLength < 1 {
			return fmt.Errorf("selector profile %s: minLength must be at least 1", name)
		}
		if opts.Debounce < 0 {
			return fmt.Errorf("selector profile %s: debounce must not be negative", name)
		}
		if opts.FetchTimeout < 0 {
			return fmt.Errorf("selector profile %s: fetchTimeout must not be negative", name)
		}
	}
	return nil
}

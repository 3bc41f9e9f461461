package sites

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// sitesFile represents the structure of a sites YAML file.
type sitesFile struct {
	Sites []map[string]any `yaml:"sites"`
}

// LoadFile reads site profiles from a YAML file. The built-in default profile
// is always available and can be overridden by a profile of the same name.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}
	return Parse(data)
}

// Parse decodes site profiles from YAML.
func Parse(data []byte) ([]Profile, error) {
	var file sitesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	profiles := []Profile{Default()}
	for i, raw := range file.Sites {
		p, err := decodeProfile(raw)
		if err != nil {
			return nil, fmt.Errorf("site #%d: %w", i+1, err)
		}
		profiles = upsert(profiles, p)
	}
	return profiles, nil
}

// decodeProfile converts one raw YAML mapping into a validated Profile.
func decodeProfile(raw map[string]any) (Profile, error) {
	var p Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if decodeErr := decoder.Decode(raw); decodeErr != nil {
		return Profile{}, fmt.Errorf("failed to decode site: %w", decodeErr)
	}

	p = p.withDefaults()
	if validateErr := p.Validate(); validateErr != nil {
		return Profile{}, validateErr
	}
	return p, nil
}

// upsert replaces a profile with the same name or appends a new one.
func upsert(profiles []Profile, p Profile) []Profile {
	for i := range profiles {
		if profiles[i].Name == p.Name {
			profiles[i] = p
			return profiles
		}
	}
	return append(profiles, p)
}

// Find returns the profile with the given name.
func Find(profiles []Profile, name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrUnknownSite, name)
}

// Resolve picks the named profile from file (or the built-in set when file is
// empty) and applies an optional base URL override.
func Resolve(file, name, overrideURL string) (Profile, error) {
	profiles := []Profile{Default()}
	if file != "" {
		loaded, err := LoadFile(file)
		if err != nil {
			return Profile{}, err
		}
		profiles = loaded
	}

	p, err := Find(profiles, name)
	if err != nil {
		return Profile{}, err
	}
	if overrideURL != "" {
		p = p.WithURL(overrideURL)
		if validateErr := p.Validate(); validateErr != nil {
			return Profile{}, validateErr
		}
	}
	return p, nil
}

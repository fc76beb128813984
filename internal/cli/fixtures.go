package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/genoscope/gql/internal/coord"
	"github.com/genoscope/gql/internal/track"
)

// trackFixture is one YAML track file. Fixture coordinates are written the
// way a human reads a browser: 1-based, inclusive of both ends. Loading
// converts them to internal coordinates.
type trackFixture struct {
	Name     string           `yaml:"name"`
	Kind     string           `yaml:"kind"`
	Features []featureFixture `yaml:"features"`
}

type featureFixture struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Chromosome string            `yaml:"chromosome"`
	Start      int64             `yaml:"start"`
	End        int64             `yaml:"end"`
	Attributes map[string]string `yaml:"attributes"`
}

// LoadTrackFixtures reads YAML track files into a snapshot plus the name
// index over its gene tracks. Feature order within each file is preserved.
func LoadTrackFixtures(paths []string) (track.Snapshot, *track.MemoryIndex, error) {
	var tracks []track.Track
	for _, path := range paths {
		t, err := loadTrackFixture(path)
		if err != nil {
			return track.Snapshot{}, nil, err
		}
		tracks = append(tracks, t)
	}
	snap := track.NewSnapshot(tracks)
	return snap, track.IndexSnapshot(snap), nil
}

func loadTrackFixture(path string) (track.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return track.Track{}, WrapExitError(ExitCommandError, "reading track file", err)
	}

	var fixture trackFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return track.Track{}, WrapExitError(ExitCommandError, fmt.Sprintf("parsing track file %s", path), err)
	}
	if fixture.Name == "" {
		return track.Track{}, &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("%s: track has no name", path)}
	}

	kind := track.Kind(fixture.Kind)
	switch kind {
	case track.KindGenes, track.KindVariants, track.KindTranscripts:
	default:
		return track.Track{}, &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("%s: unknown track kind %q", path, fixture.Kind)}
	}

	t := track.Track{ID: fixture.Name, Name: fixture.Name, Kind: kind}
	for i, f := range fixture.Features {
		if f.Start < 1 || f.End < f.Start {
			return track.Track{}, &ExitError{
				Code:    ExitCommandError,
				Message: fmt.Sprintf("%s: feature %d has invalid span %d-%d", path, i, f.Start, f.End),
			}
		}
		id := f.ID
		if id == "" {
			id = f.Name
		}
		t.Features = append(t.Features, track.Feature{
			ID:         id,
			Name:       f.Name,
			Chromosome: coord.CanonicalChromosome(f.Chromosome),
			Start:      f.Start - 1,
			End:        f.End,
			Attributes: f.Attributes,
		})
	}
	return t, nil
}

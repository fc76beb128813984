// Package track defines the read-only feature collections the query engine
// executes against: tracks of genomic features, the viewport, and the shared
// name index used for gene lookup.
//
// Snapshots are immutable by construction. NewSnapshot deep-copies its input
// so a caller mutating its own collections cannot change what an in-flight
// execution observes.
package track

import (
	"sort"
	"strings"

	"github.com/genoscope/gql/internal/coord"
)

// Kind tags the feature type a track carries.
type Kind string

const (
	KindGenes       Kind = "genes"
	KindVariants    Kind = "variants"
	KindTranscripts Kind = "transcripts"
)

// Feature is one genomic feature. Coordinates are internal (0-based,
// half-open). Attributes is an open map for kind-specific fields such as
// strand, biotype, or clinical significance.
type Feature struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Chromosome string            `json:"chromosome"`
	Start      int64             `json:"start"`
	End        int64             `json:"end"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Region returns the feature's interval as a coord.Region.
func (f Feature) Region() coord.Region {
	return coord.Region{Chromosome: f.Chromosome, Start: f.Start, End: f.End}
}

// Attribute returns the named attribute, or "" if absent.
func (f Feature) Attribute(key string) (string, bool) {
	v, ok := f.Attributes[key]
	return v, ok
}

// Track is a named, ordered collection of features of one kind. Feature
// order is discovery order and is significant: the executor uses it to break
// sort ties deterministically.
type Track struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     Kind      `json:"kind"`
	Features []Feature `json:"features"`
}

// Viewport is the currently visible region.
type Viewport = coord.Region

// Snapshot is an immutable ordered list of loaded tracks.
type Snapshot struct {
	tracks []Track
}

// NewSnapshot builds a Snapshot from tracks, deep-copying every track's
// feature slice and attribute maps.
func NewSnapshot(tracks []Track) Snapshot {
	copied := make([]Track, len(tracks))
	for i, t := range tracks {
		features := make([]Feature, len(t.Features))
		for j, f := range t.Features {
			if f.Attributes != nil {
				attrs := make(map[string]string, len(f.Attributes))
				for k, v := range f.Attributes {
					attrs[k] = v
				}
				f.Attributes = attrs
			}
			features[j] = f
		}
		t.Features = features
		copied[i] = t
	}
	return Snapshot{tracks: copied}
}

// Tracks returns the tracks in load order. Callers must not mutate the
// returned slice or its features.
func (s Snapshot) Tracks() []Track {
	return s.tracks
}

// ByName finds a track whose ID or display name matches, ignoring case.
func (s Snapshot) ByName(name string) (Track, bool) {
	for _, t := range s.tracks {
		if strings.EqualFold(t.ID, name) || strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Track{}, false
}

// OfKind returns every track of the given kind, in load order.
func (s Snapshot) OfKind(kind Kind) []Track {
	var out []Track
	for _, t := range s.tracks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Location is a resolved feature name: the canonical name plus its interval.
type Location struct {
	Name   string
	Region coord.Region
}

// NameIndex resolves feature names to locations. It is shared between the
// heuristic translator (recognizing gene names in free text) and the
// executor (search, WITHIN joins). Implementations must be safe for
// concurrent readers and must not change once handed to the engine.
type NameIndex interface {
	// Lookup resolves an exact name, ignoring case.
	Lookup(name string) (Location, bool)

	// Names returns every known name in sorted order.
	Names() []string
}

// MemoryIndex is the in-memory NameIndex implementation.
type MemoryIndex struct {
	byName map[string]Location
	names  []string
}

// NewMemoryIndex builds an index over the given locations. Later duplicates
// of a name win, matching load order semantics.
func NewMemoryIndex(locations []Location) *MemoryIndex {
	byName := make(map[string]Location, len(locations))
	for _, loc := range locations {
		byName[strings.ToUpper(loc.Name)] = loc
	}
	names := make([]string, 0, len(byName))
	for _, loc := range byName {
		names = append(names, loc.Name)
	}
	sort.Strings(names)
	return &MemoryIndex{byName: byName, names: names}
}

// IndexSnapshot builds a MemoryIndex over every gene track in the snapshot.
func IndexSnapshot(s Snapshot) *MemoryIndex {
	var locations []Location
	for _, t := range s.OfKind(KindGenes) {
		for _, f := range t.Features {
			locations = append(locations, Location{Name: f.Name, Region: f.Region()})
		}
	}
	return NewMemoryIndex(locations)
}

// Lookup implements NameIndex.
func (idx *MemoryIndex) Lookup(name string) (Location, bool) {
	loc, ok := idx.byName[strings.ToUpper(name)]
	return loc, ok
}

// Names implements NameIndex.
func (idx *MemoryIndex) Names() []string {
	return idx.names
}

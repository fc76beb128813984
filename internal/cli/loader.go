package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/genoscope/gql/internal/coord"
)

// manifestSchema constrains genome manifest files. A manifest names the
// genome, points at the annotation database and/or track fixture files, and
// optionally sets the starting viewport.
const manifestSchema = `
#Manifest: {
	genome: {
		id:   string & !=""
		name: string | *""
	}
	database?: string & !=""
	tracks?: [...string & !=""]
	viewport?: string & !=""
}
`

// Manifest is a validated genome manifest. Database and Tracks paths are
// resolved relative to the manifest file's directory.
type Manifest struct {
	GenomeID   string
	GenomeName string
	Database   string
	Tracks     []string
	Viewport   coord.Region
	HasView    bool
}

// rawManifest mirrors the CUE shape before path resolution and viewport
// parsing.
type rawManifest struct {
	Genome struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"genome"`
	Database string   `json:"database"`
	Tracks   []string `json:"tracks"`
	Viewport string   `json:"viewport"`
}

// LoadManifest reads and validates a genome manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading manifest", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(manifestSchema).LookupPath(cue.ParsePath("#Manifest"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("manifest schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing manifest", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, WrapExitError(ExitCommandError, "validating manifest", err)
	}

	var raw rawManifest
	if err := unified.Decode(&raw); err != nil {
		return nil, WrapExitError(ExitCommandError, "decoding manifest", err)
	}

	m := &Manifest{GenomeID: raw.Genome.ID, GenomeName: raw.Genome.Name}

	dir := filepath.Dir(path)
	if raw.Database != "" {
		m.Database = resolvePath(dir, raw.Database)
	}
	for _, t := range raw.Tracks {
		m.Tracks = append(m.Tracks, resolvePath(dir, t))
	}

	if raw.Viewport != "" {
		region, err := coord.ParseRegion(raw.Viewport)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "manifest viewport", err)
		}
		m.Viewport = region
		m.HasView = true
	}

	if m.Database == "" && len(m.Tracks) == 0 {
		return nil, &ExitError{Code: ExitCommandError, Message: "manifest names no database and no track files"}
	}
	return m, nil
}

// resolvePath keeps absolute paths and anchors relative ones at the
// manifest's directory.
func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

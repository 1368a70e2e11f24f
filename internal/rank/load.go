package rank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed ladder.schema.json
var ladderSchemaJSON []byte

const ladderSchemaURL = "schema://hunter/ladder.json"

// SupportedLadderMajor is the only ladder file major version this build reads.
const SupportedLadderMajor = "v1"

var (
	ladderSchemaOnce sync.Once
	ladderSchema     *jsonschema.Schema
	ladderSchemaErr  error
)

// ladderFile is the on-disk ladder document.
type ladderFile struct {
	Version    string          `json:"version"`
	Ranks      []Config        `json:"ranks"`
	Assessment AssessmentRules `json:"assessment"`
}

func compiledLadderSchema() (*jsonschema.Schema, error) {
	ladderSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(ladderSchemaJSON, &doc); err != nil {
			ladderSchemaErr = fmt.Errorf("parse ladder schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(ladderSchemaURL, doc); err != nil {
			ladderSchemaErr = fmt.Errorf("add ladder schema: %w", err)
			return
		}
		ladderSchema, ladderSchemaErr = c.Compile(ladderSchemaURL)
	})
	return ladderSchema, ladderSchemaErr
}

// LoadLadder reads a JSON ladder document, checks it against the ladder
// schema and version, and builds a validated Ladder from it.
func LoadLadder(r io.Reader) (*Ladder, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ladder: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse ladder: %w", err)
	}
	sch, err := compiledLadderSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("ladder schema: %w", err)
	}

	var lf ladderFile
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lf); err != nil {
		return nil, fmt.Errorf("decode ladder: %w", err)
	}

	if err := checkLadderVersion(lf.Version); err != nil {
		return nil, err
	}

	for i := range lf.Ranks {
		lf.Ranks[i].ID = Rank(strings.ToUpper(string(lf.Ranks[i].ID)))
	}
	lf.Assessment.Ceiling = Rank(strings.ToUpper(string(lf.Assessment.Ceiling)))
	for i := range lf.Assessment.Bands {
		lf.Assessment.Bands[i].Rank = Rank(strings.ToUpper(string(lf.Assessment.Bands[i].Rank)))
	}

	return NewLadder(lf.Ranks, lf.Assessment)
}

// LoadLadderFile opens path and calls LoadLadder.
func LoadLadderFile(path string) (*Ladder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ladder file: %w", err)
	}
	defer f.Close()

	l, err := LoadLadder(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func checkLadderVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("ladder version %q is not valid semver", v)
	}
	if major := semver.Major(v); major != SupportedLadderMajor {
		return fmt.Errorf("ladder version %s unsupported (want %s.x.x)", v, SupportedLadderMajor)
	}
	return nil
}

// MarshalLadder renders l in the on-disk ladder format.
func MarshalLadder(l *Ladder) ([]byte, error) {
	return json.MarshalIndent(ladderFile{
		Version:    "1.0.0",
		Ranks:      l.Ranks(),
		Assessment: l.Assessment(),
	}, "", "  ")
}

package harness

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource []byte

// Scenario is a scripted sequence of dispatches with expectations about
// what each one changes and what the final snapshot holds.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	Description string `yaml:"description" json:"description"`

	// RequestPrefix prefixes generated request ids ("req" when empty).
	RequestPrefix string `yaml:"request_prefix,omitempty" json:"request_prefix,omitempty"`

	Steps []Step `yaml:"steps" json:"steps"`

	// Assertions are checked against the final snapshot.
	Assertions []Assertion `yaml:"assertions,omitempty" json:"assertions,omitempty"`

	// Golden lists the slices recorded in the golden file next to the trace.
	Golden []string `yaml:"golden,omitempty" json:"golden,omitempty"`
}

// Step dispatches one action.
type Step struct {
	// Dispatch is the action type. Unregistered types are dispatched as
	// unknown actions.
	Dispatch string `yaml:"dispatch" json:"dispatch"`

	Payload map[string]any `yaml:"payload,omitempty" json:"payload,omitempty"`

	// Request names an async request. The harness replaces the name with a
	// generated id and adds it, with Status and Error, to the payload.
	Request string `yaml:"request,omitempty" json:"request,omitempty"`
	Status  string `yaml:"status,omitempty" json:"status,omitempty"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`

	// Changed, when set, is the exact list of slices the step must change.
	Changed []string `yaml:"changed,omitempty" json:"changed,omitempty"`

	// Unchanged requires the step to return the very same snapshot.
	Unchanged bool `yaml:"unchanged,omitempty" json:"unchanged,omitempty"`

	// ExpectError is the runtime error code the step must fail with.
	ExpectError string `yaml:"expect_error,omitempty" json:"expect_error,omitempty"`
}

// Assertion checks the final snapshot.
type Assertion struct {
	// Type is one of keys, entry, value or ledger.
	Type string `yaml:"type" json:"type"`

	Slice string `yaml:"slice,omitempty" json:"slice,omitempty"`

	// Path is a dot-separated path into the slice's JSON form. Segments
	// step through object fields, list indexes and container entries.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Keys is the expected key order (keys) of a container or list.
	Keys []string `yaml:"keys,omitempty" json:"keys,omitempty"`

	// Key names a container entry or object field (entry).
	Key    string `yaml:"key,omitempty" json:"key,omitempty"`
	Absent bool   `yaml:"absent,omitempty" json:"absent,omitempty"`

	// Expect is matched as a subset: objects may carry extra fields.
	Expect any `yaml:"expect,omitempty" json:"expect,omitempty"`

	// IDs is the expected ledger content (ledger). Request names are
	// resolved to their generated ids.
	IDs []string `yaml:"ids,omitempty" json:"ids,omitempty"`
}

// Assertion type constants.
const (
	AssertKeys   = "keys"
	AssertEntry  = "entry"
	AssertValue  = "value"
	AssertLedger = "ledger"
)

// LoadScenario reads a scenario from a .yaml, .yml or .cue file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported scenario file extension %q", ext)
	}
}

// ParseYAML parses a YAML scenario.
func ParseYAML(data []byte) (*Scenario, error) {
	// Strict decoding first: typos get a line number.
	var strict Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&strict); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ctx := cuecontext.New()
	return checkScenario(ctx, ctx.Encode(doc))
}

// ParseCUE parses a CUE scenario. The file's top level is the scenario.
func ParseCUE(data []byte, filename string) (*Scenario, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %s", cueDetails(err))
	}
	return checkScenario(ctx, v)
}

// checkScenario unifies v with the #Scenario schema, decodes the result
// and applies the checks the schema cannot express.
func checkScenario(ctx *cue.Context, v cue.Value) (*Scenario, error) {
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("scenario schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid scenario: %s", cueDetails(err))
	}

	data, err := unified.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %s", cueDetails(err))
	}

	var sc Scenario
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

func cueDetails(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}

// validateScenario checks the cross-field rules of steps and assertions.
func validateScenario(s *Scenario) error {
	for i, step := range s.Steps {
		if (step.Request == "") != (step.Status == "") {
			return fmt.Errorf("steps[%d]: request and status must be given together", i)
		}
		if step.Error != "" && step.Status != "error" {
			return fmt.Errorf("steps[%d]: error requires status: error", i)
		}
		if step.ExpectError != "" && (step.Unchanged || len(step.Changed) > 0) {
			return fmt.Errorf("steps[%d]: expect_error excludes changed and unchanged", i)
		}
		if step.Unchanged && len(step.Changed) > 0 {
			return fmt.Errorf("steps[%d]: changed and unchanged are exclusive", i)
		}
	}

	for i, a := range s.Assertions {
		if a.Type == AssertEntry && a.Absent && a.Expect != nil {
			return fmt.Errorf("assertions[%d]: absent entry cannot carry expect", i)
		}
	}

	seen := make(map[string]bool, len(s.Golden))
	for _, name := range s.Golden {
		if seen[name] {
			return fmt.Errorf("golden: slice %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

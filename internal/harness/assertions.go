package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/dbgstate/internal/state"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nTrace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s seq=%d changed=%v", ev.Step, ev.Type, ev.Seq, ev.Changed)
			if ev.Error != "" {
				fmt.Fprintf(&buf, " error=%s", ev.Error)
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the result's final
// snapshot and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion, reg *state.Registry) []string {
	var errs []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertLedger:
			err = assertLedger(result, a)
		case AssertKeys, AssertEntry, AssertValue:
			var target any
			target, err = resolve(result.Snapshot, reg, a.Slice, a.Path)
			if err == nil {
				switch a.Type {
				case AssertKeys:
					err = assertKeys(target, a)
				case AssertEntry:
					err = assertEntry(target, a)
				default:
					err = assertValue(target, a)
				}
			}
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}

		if err != nil {
			var ae *AssertionError
			if errors.As(err, &ae) {
				ae.Trace = result.Trace
			}
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func where(a Assertion) string {
	if a.Path == "" {
		return a.Slice
	}
	return a.Slice + "." + a.Path
}

// assertKeys compares the key order of a container, or the elements of a
// list, with a.Keys.
func assertKeys(target any, a Assertion) error {
	var got []string
	switch {
	case isContainer(target):
		for _, k := range target.(map[string]any)["order"].([]any) {
			got = append(got, scalarString(k))
		}
	default:
		list, ok := target.([]any)
		if !ok {
			return fmt.Errorf("%s is neither a container nor a list", where(a))
		}
		for _, v := range list {
			got = append(got, scalarString(v))
		}
	}
	if got == nil {
		got = []string{}
	}
	want := a.Keys
	if want == nil {
		want = []string{}
	}

	if !slices.Equal(want, got) {
		return &AssertionError{
			Type:     AssertKeys,
			Expected: fmt.Sprintf("%s keys %v", where(a), want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

// assertEntry looks a.Key up in a container's entries or an object's
// fields and matches it against a.Expect.
func assertEntry(target any, a Assertion) error {
	var fields map[string]any
	switch {
	case isContainer(target):
		fields = target.(map[string]any)["entries"].(map[string]any)
	default:
		obj, ok := target.(map[string]any)
		if !ok {
			return fmt.Errorf("%s is neither a container nor an object", where(a))
		}
		fields = obj
	}

	got, present := fields[a.Key]
	switch {
	case a.Absent && present:
		return &AssertionError{
			Type:     AssertEntry,
			Expected: fmt.Sprintf("%s has no entry %q", where(a), a.Key),
			Actual:   fmt.Sprintf("entry %s", compact(got)),
		}
	case a.Absent:
		return nil
	case !present:
		return &AssertionError{
			Type:     AssertEntry,
			Expected: fmt.Sprintf("%s has entry %q", where(a), a.Key),
			Actual:   "entry not found",
		}
	}

	if a.Expect == nil {
		return nil
	}
	want, err := normalize(a.Expect)
	if err != nil {
		return err
	}
	if !subsetMatch(want, got) {
		return &AssertionError{
			Type:     AssertEntry,
			Expected: fmt.Sprintf("%s[%s] matching %s", where(a), a.Key, compact(want)),
			Actual:   compact(got),
		}
	}
	return nil
}

func assertValue(target any, a Assertion) error {
	want, err := normalize(a.Expect)
	if err != nil {
		return err
	}
	if !subsetMatch(want, target) {
		return &AssertionError{
			Type:     AssertValue,
			Expected: fmt.Sprintf("%s matching %s", where(a), compact(want)),
			Actual:   compact(target),
		}
	}
	return nil
}

// assertLedger compares the in-flight request ids with a.IDs, resolving
// request names to generated ids.
func assertLedger(result *Result, a Assertion) error {
	want := make([]string, 0, len(a.IDs))
	for _, id := range a.IDs {
		if gen, ok := result.Requests[id]; ok {
			id = gen
		}
		want = append(want, id)
	}
	got := result.Snapshot.AsyncRequests.IDs()
	if got == nil {
		got = []string{}
	}

	if !slices.Equal(want, got) {
		return &AssertionError{
			Type:     AssertLedger,
			Expected: fmt.Sprintf("in-flight requests %v", want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

// resolve returns the JSON form of slice name in snap, walked along path.
func resolve(snap *state.Snapshot, reg *state.Registry, name, path string) (any, error) {
	sub, ok := reg.Lookup(snap, name)
	if !ok {
		return nil, fmt.Errorf("unknown slice %q", name)
	}
	cur, err := normalize(sub)
	if err != nil {
		return nil, fmt.Errorf("encode slice %s: %w", name, err)
	}
	if path == "" {
		return cur, nil
	}

	walked := name
	for _, seg := range strings.Split(path, ".") {
		next, ok := step(cur, seg)
		if !ok {
			return nil, &AssertionError{
				Type:     "path",
				Expected: fmt.Sprintf("%s.%s to exist", walked, seg),
				Actual:   fmt.Sprintf("%s is %s", walked, compact(cur)),
			}
		}
		cur = next
		walked += "." + seg
	}
	return cur, nil
}

// step follows one path segment. A container is entered through its
// entries unless the segment names "order" or "entries" itself.
func step(cur any, seg string) (any, bool) {
	switch v := cur.(type) {
	case map[string]any:
		if isContainer(v) && seg != "order" && seg != "entries" {
			e, ok := v["entries"].(map[string]any)[seg]
			return e, ok
		}
		e, ok := v[seg]
		return e, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(v) {
			return nil, false
		}
		return v[i], true
	}
	return nil, false
}

// isContainer reports whether v has the JSON shape of a resource container.
func isContainer(v any) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 2 {
		return false
	}
	_, hasOrder := m["order"].([]any)
	_, hasEntries := m["entries"].(map[string]any)
	return hasOrder && hasEntries
}

// normalize round-trips v through JSON so expected and actual values share
// one representation (maps, slices, json.Number).
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// subsetMatch reports whether actual contains expected: objects may carry
// extra fields, lists must match element by element.
func subsetMatch(expected, actual any) bool {
	switch exp := expected.(type) {
	case map[string]any:
		act, ok := actual.(map[string]any)
		if !ok {
			return false
		}
		for k, ev := range exp {
			av, exists := act[k]
			if !exists || !subsetMatch(ev, av) {
				return false
			}
		}
		return true
	case []any:
		act, ok := actual.([]any)
		if !ok || len(act) != len(exp) {
			return false
		}
		for i := range exp {
			if !subsetMatch(exp[i], act[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(expected, actual)
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return compact(v)
	}
}

func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

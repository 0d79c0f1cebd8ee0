package state

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/canon"
	"github.com/roach88/dbgstate/internal/reducers"
)

func TestDefault_RegistersEverySnapshotField(t *testing.T) {
	reg := MustDefault()

	typ := reflect.TypeFor[Snapshot]()
	var tags []string
	for i := 0; i < typ.NumField(); i++ {
		tags = append(tags, strings.Split(typ.Field(i).Tag.Get("json"), ",")[0])
	}
	assert.Equal(t, tags, reg.Names(), "slice order matches the snapshot field order")

	snap := reg.Initialize()
	v := reflect.ValueOf(snap).Elem()
	for i := 0; i < v.NumField(); i++ {
		assert.False(t, v.Field(i).IsNil(), "field %s not initialised", typ.Field(i).Name)
	}
}

func TestInitialize_Golden(t *testing.T) {
	snap := MustDefault().Initialize()

	data, err := canon.Marshal(snap)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "initial_snapshot", data)
}

func TestInitialize_ReturnsFreshSnapshots(t *testing.T) {
	reg := MustDefault()
	a, b := reg.Initialize(), reg.Initialize()

	assert.NotSame(t, a, b)
	assert.Equal(t, a, b)
}

func TestApply_AttachThreadScenario(t *testing.T) {
	reg := MustDefault()
	s0 := reg.Initialize()

	s1, err := reg.Apply(s0, action.AttachThread{Thread: action.Thread{Actor: "t1", Name: "Main Thread", Kind: "mainThread"}})
	require.NoError(t, err)
	assert.Equal(t, []action.ThreadID{"t1"}, s1.Threads.Keys())

	record := action.SourceActor{Actor: "a1", Thread: "t1", Source: "s1", URL: "http://example.com/app.js"}
	s2, err := reg.Apply(s1, action.RegisterSourceActor{Actor: record})
	require.NoError(t, err)

	got, ok := s2.SourceActors.Get("a1")
	require.True(t, ok)
	assert.Equal(t, record, got)
	assert.Same(t, s1.Threads, s2.Threads, "threads did not process the action")
	assert.Equal(t, []string{"sourceActors"}, reg.Changed(s1, s2))
}

func TestApply_UnknownActionReturnsSameSnapshot(t *testing.T) {
	reg := MustDefault()
	s0 := reg.Initialize()

	s1, err := reg.Apply(s0, action.Unknown{Name: "@@redux/INIT"})
	require.NoError(t, err)
	assert.Same(t, s0, s1)
	assert.Empty(t, reg.Changed(s0, s1))
}

func TestApply_StructuralSharing(t *testing.T) {
	reg := MustDefault()
	s := reg.Initialize()

	steps := []action.Action{
		action.AttachThread{Thread: action.Thread{Actor: "t1"}},
		action.AddSources{Sources: []action.Source{{ID: "s1", URL: "http://example.com/app.js"}}},
		action.SelectLocation{Location: action.Location{SourceID: "s1", Line: 3}, URL: "http://example.com/app.js"},
		action.SetBreakpoint{Breakpoint: action.Breakpoint{Location: action.Location{SourceID: "s1", Line: 3}, SourceURL: "http://example.com/app.js"}},
		action.Paused{Thread: "t1", Why: "breakpoint", Frames: []action.Frame{{ID: "f1", Name: "main"}}},
		action.SetPreview{Expression: "x", Result: "1"},
		action.Resumed{Thread: "t1"},
		action.Unknown{Name: "NOOP"},
		action.CloseQuickOpen{},
	}
	for _, a := range steps {
		next, err := reg.Apply(s, a)
		require.NoError(t, err, a.Type())

		changed := reg.Changed(s, next)
		for _, name := range reg.Names() {
			prev, _ := reg.Lookup(s, name)
			cur, _ := reg.Lookup(next, name)
			if containsString(changed, name) {
				assert.NotSame(t, prev, cur, "%s: %s", a.Type(), name)
			} else {
				assert.Same(t, prev, cur, "%s: %s should be shared", a.Type(), name)
			}
		}
		if len(changed) == 0 {
			assert.Same(t, s, next, a.Type())
		}
		s = next
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	reg := MustDefault()
	s0 := reg.Initialize()
	before, err := Digest(s0)
	require.NoError(t, err)

	_, err = reg.Apply(s0, action.AttachThread{Thread: action.Thread{Actor: "t1"}})
	require.NoError(t, err)

	after, err := Digest(s0)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, s0.Threads.Len())
}

// countingRegistry wraps a few real slices so every reducer call is counted.
func countingRegistry(t *testing.T, calls map[string]int) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		Define("threads", reducers.InitialThreadsState,
			func(s *reducers.ThreadsState, a action.Action) (*reducers.ThreadsState, error) {
				calls["threads"]++
				return reducers.ReduceThreads(s, a)
			},
			func(s *Snapshot) *reducers.ThreadsState { return s.Threads },
			func(s *Snapshot, v *reducers.ThreadsState) { s.Threads = v }),
		Define("tabs", reducers.InitialTabsState,
			func(s *reducers.TabsState, a action.Action) (*reducers.TabsState, error) {
				calls["tabs"]++
				return reducers.ReduceTabs(s, a)
			},
			func(s *Snapshot) *reducers.TabsState { return s.Tabs },
			func(s *Snapshot, v *reducers.TabsState) { s.Tabs = v }),
		Define("preview", reducers.InitialPreviewState,
			func(s *reducers.PreviewState, a action.Action) (*reducers.PreviewState, error) {
				calls["preview"]++
				return reducers.ReducePreview(s, a)
			},
			func(s *Snapshot) *reducers.PreviewState { return s.Preview },
			func(s *Snapshot, v *reducers.PreviewState) { s.Preview = v }),
	)
	require.NoError(t, err)
	return reg
}

func TestApply_FanOutCompleteness(t *testing.T) {
	calls := map[string]int{}
	reg := countingRegistry(t, calls)
	s := reg.Initialize()

	actions := []action.Action{
		action.AttachThread{Thread: action.Thread{Actor: "t1"}},
		action.AddTab{URL: "a.js"},
		action.Unknown{Name: "NOOP"},
		action.SetPreview{Expression: "x"},
	}
	for i, a := range actions {
		var err error
		s, err = reg.Apply(s, a)
		require.NoError(t, err)
		for _, name := range reg.Names() {
			assert.Equal(t, i+1, calls[name], "%s after %s", name, a.Type())
		}
	}
}

func TestApply_ReducerErrorFailsWholeApply(t *testing.T) {
	var after int
	reg, err := NewRegistry(
		Define("threads", reducers.InitialThreadsState, reducers.ReduceThreads,
			func(s *Snapshot) *reducers.ThreadsState { return s.Threads },
			func(s *Snapshot, v *reducers.ThreadsState) { s.Threads = v }),
		Define("tabs", reducers.InitialTabsState,
			func(s *reducers.TabsState, a action.Action) (*reducers.TabsState, error) {
				after++
				return s, nil
			},
			func(s *Snapshot) *reducers.TabsState { return s.Tabs },
			func(s *Snapshot, v *reducers.TabsState) { s.Tabs = v }),
	)
	require.NoError(t, err)
	s0 := reg.Initialize()

	next, err := reg.Apply(s0, action.AttachThread{})
	require.Error(t, err)
	assert.Nil(t, next, "no partial snapshot")
	assert.Zero(t, after, "later reducers do not run after a failure")

	var re *ReduceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "threads", re.Slice)
	assert.Equal(t, action.TypeAttachThread, re.Action)
	assert.ErrorIs(t, err, reducers.ErrInvalidKey)
	assert.True(t, IsReduceError(err))
	assert.Equal(t, 0, s0.Threads.Len())
}

func TestApply_NilSubStateIsAnError(t *testing.T) {
	reg, err := NewRegistry(
		Define("preview", reducers.InitialPreviewState,
			func(*reducers.PreviewState, action.Action) (*reducers.PreviewState, error) { return nil, nil },
			func(s *Snapshot) *reducers.PreviewState { return s.Preview },
			func(s *Snapshot, v *reducers.PreviewState) { s.Preview = v }),
	)
	require.NoError(t, err)

	_, err = reg.Apply(reg.Initialize(), action.ClearPreview{})
	assert.True(t, IsReduceError(err))
}

func TestNewRegistry_Errors(t *testing.T) {
	get := func(s *Snapshot) *reducers.TabsState { return s.Tabs }
	set := func(s *Snapshot, v *reducers.TabsState) { s.Tabs = v }
	ok := func(name string) Slice {
		return Define(name, reducers.InitialTabsState, reducers.ReduceTabs, get, set)
	}

	tests := []struct {
		name   string
		slices []Slice
		want   string
	}{
		{"duplicate name", []Slice{ok("tabs"), ok("tabs")}, "duplicate name"},
		{"empty name", []Slice{ok("")}, "empty name"},
		{"nil slice", []Slice{ok("tabs"), nil}, "nil slice"},
		{"missing reducer", []Slice{Define[reducers.TabsState]("tabs", reducers.InitialTabsState, nil, get, set)}, "missing reducer"},
		{"missing factory", []Slice{Define[reducers.TabsState]("tabs", nil, reducers.ReduceTabs, get, set)}, "missing initial-state factory"},
		{"missing accessor", []Slice{Define[reducers.TabsState]("tabs", reducers.InitialTabsState, reducers.ReduceTabs, nil, set)}, "missing snapshot accessor"},
		{"shared snapshot field", []Slice{ok("tabs"), ok("moreTabs")}, "overwritten by another slice"},
		{"setter drops the value", []Slice{Define("tabs", reducers.InitialTabsState, reducers.ReduceTabs, get, func(*Snapshot, *reducers.TabsState) {})}, "not read back"},
		{"nil initial state", []Slice{Define("tabs", func() *reducers.TabsState { return nil }, reducers.ReduceTabs, get, set)}, "factory returned nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.slices...)
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.ErrorIs(t, err, ErrRegistration)
			assert.Contains(t, err.Error(), tt.want)

			var re *RegistrationError
			assert.True(t, errors.As(err, &re))
		})
	}
}

func TestLookup(t *testing.T) {
	reg := MustDefault()
	s := reg.Initialize()

	v, ok := reg.Lookup(s, "threads")
	require.True(t, ok)
	assert.Same(t, s.Threads, v)

	_, ok = reg.Lookup(s, "console")
	assert.False(t, ok)
}

func TestDigest_DependsOnContentOnly(t *testing.T) {
	reg := MustDefault()

	attach := action.AttachThread{Thread: action.Thread{Actor: "t1"}}
	viaTabs := mustApply(t, reg, reg.Initialize(),
		attach,
		action.AddTab{URL: "a.js"},
		action.CloseTab{URL: "a.js"},
	)
	direct := mustApply(t, reg, reg.Initialize(), attach)

	d1, err := Digest(viaTabs)
	require.NoError(t, err)
	d2, err := Digest(direct)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	d0, err := Digest(reg.Initialize())
	require.NoError(t, err)
	assert.NotEqual(t, d0, d1)
	assert.Len(t, d0, 64)
}

func mustApply(t *testing.T, reg *Registry, s *Snapshot, actions ...action.Action) *Snapshot {
	t.Helper()
	for _, a := range actions {
		var err error
		s, err = reg.Apply(s, a)
		require.NoError(t, err, a.Type())
	}
	return s
}

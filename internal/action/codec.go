package action

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/roach88/dbgstate/internal/canon"
)

// Envelope is the serialised form of an action: its tag and its payload.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type decoder func(payload []byte) (Action, error)

var registry = map[Type]decoder{}

func register[T Action]() {
	var zero T
	registry[zero.Type()] = func(payload []byte) (Action, error) {
		var v T
		if len(payload) == 0 {
			return v, nil
		}
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func init() {
	register[AttachThread]()
	register[DetachThread]()
	register[RegisterSourceActor]()
	register[RemoveSourceActors]()
	register[SetBreakableLines]()

	register[AddSources]()
	register[SelectLocation]()
	register[LoadSourceText]()
	register[AddTab]()
	register[CloseTab]()
	register[MoveTab]()
	register[Navigate]()

	register[SetBreakpoint]()
	register[RemoveBreakpoint]()
	register[DisableBreakpoint]()
	register[UpdateEventListeners]()
	register[ReceiveEventListenerTypes]()
	register[UpdateEventListenerExpanded]()
	register[ToggleEventLogging]()

	register[Paused]()
	register[Resumed]()
	register[SelectFrame]()
	register[SetPauseOnExceptions]()
	register[AddExpression]()
	register[UpdateExpression]()
	register[DeleteExpression]()
	register[EvaluateExpressions]()
	register[SetPreview]()
	register[ClearPreview]()
	register[ExpandNode]()
	register[CollapseNode]()
	register[LoadProperties]()

	register[TogglePane]()
	register[SetPrimaryPaneTab]()
	register[HighlightLines]()
	register[ClearHighlightLines]()
	register[SetFileSearchQuery]()
	register[UpdateFileSearchResults]()
	register[ToggleFileSearchModifier]()
	register[SetSymbols]()
	register[AddSearchQuery]()
	register[AddSearchResult]()
	register[UpdateSearchStatus]()
	register[ClearSearch]()
	register[OpenQuickOpen]()
	register[SetQuickOpenQuery]()
	register[CloseQuickOpen]()
	register[SetExpandedState]()
	register[SetFocusedItem]()
	register[SetProjectRoot]()
}

// Types lists every registered action type in sorted order.
func Types() []Type {
	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Known reports whether t is a registered action type.
func Known(t Type) bool {
	_, ok := registry[t]
	return ok
}

// Encode serialises a with a canonical JSON payload.
// Unknown actions encode with their name as the only payload field.
func Encode(a Action) (Envelope, error) {
	if a == nil {
		return Envelope{}, fmt.Errorf("encode action: nil action")
	}
	payload, err := canon.Marshal(a)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode action %s: %w", a.Type(), err)
	}
	return Envelope{Type: a.Type(), Payload: payload}, nil
}

// Decode rebuilds an action from its envelope. Payload fields that the
// action kind does not define are rejected.
func Decode(env Envelope) (Action, error) {
	dec, ok := registry[env.Type]
	if !ok {
		return nil, &UnknownTypeError{Type: env.Type}
	}
	a, err := dec(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode action %s: %w", env.Type, err)
	}
	return a, nil
}

// DecodeLenient is Decode, except that unregistered types become Unknown
// actions instead of errors.
func DecodeLenient(env Envelope) (Action, error) {
	if !Known(env.Type) {
		return Unknown{Name: string(env.Type)}, nil
	}
	return Decode(env)
}

// Canonical returns a in the form it takes after a journal round trip,
// along with its envelope. Strings come back NFC normalised, so applying
// the returned action and replaying the envelope reach the same state.
func Canonical(a Action) (Action, Envelope, error) {
	env, err := Encode(a)
	if err != nil {
		return nil, Envelope{}, err
	}
	back, err := Decode(env)
	if err != nil {
		return nil, Envelope{}, err
	}
	return back, env, nil
}

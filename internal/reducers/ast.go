package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// SymbolsEntry is the parse result for one source.
type SymbolsEntry struct {
	Loading bool            `json:"loading,omitempty"`
	Symbols []action.Symbol `json:"symbols"`
	Error   string          `json:"error,omitempty"`
}

type ASTState struct {
	Symbols *resource.Container[action.SourceID, SymbolsEntry] `json:"symbols"`
}

func InitialASTState() *ASTState {
	return &ASTState{Symbols: resource.Empty[action.SourceID, SymbolsEntry]()}
}

func ReduceAST(s *ASTState, a action.Action) (*ASTState, error) {
	switch a := a.(type) {
	case action.SetSymbols:
		if !resource.Valid(a.SourceID) {
			return s, invalidKey("ast", "source id", a.SourceID)
		}
		var entry SymbolsEntry
		switch a.Status {
		case action.StatusStart:
			entry = SymbolsEntry{Loading: true}
		case action.StatusError:
			entry = SymbolsEntry{Error: a.Error}
		default:
			entry = SymbolsEntry{Symbols: slices.Clone(a.Symbols)}
		}
		return &ASTState{Symbols: s.Symbols.Insert(a.SourceID, entry)}, nil

	case action.Navigate:
		if s.Symbols.Len() == 0 {
			return s, nil
		}
		return InitialASTState(), nil
	}
	return s, nil
}

package action

const (
	TypeAttachThread        Type = "ATTACH_THREAD"
	TypeDetachThread        Type = "DETACH_THREAD"
	TypeRegisterSourceActor Type = "REGISTER_SOURCE_ACTOR"
	TypeRemoveSourceActors  Type = "REMOVE_SOURCE_ACTORS"
	TypeSetBreakableLines   Type = "SET_BREAKABLE_LINES"
)

// AttachThread announces a new debuggable thread.
type AttachThread struct {
	Thread Thread `json:"thread"`
}

// DetachThread announces that a thread went away.
type DetachThread struct {
	Actor ThreadID `json:"actor"`
}

// RegisterSourceActor announces a source actor on a thread.
type RegisterSourceActor struct {
	Actor SourceActor `json:"actor"`
}

type RemoveSourceActors struct {
	Actors []SourceActorID `json:"actors"`
}

// SetBreakableLines records the lines a source actor accepts breakpoints on.
type SetBreakableLines struct {
	Actor SourceActorID `json:"actor"`
	Lines []int         `json:"lines"`
}

func (AttachThread) Type() Type        { return TypeAttachThread }
func (DetachThread) Type() Type        { return TypeDetachThread }
func (RegisterSourceActor) Type() Type { return TypeRegisterSourceActor }
func (RemoveSourceActors) Type() Type  { return TypeRemoveSourceActors }
func (SetBreakableLines) Type() Type   { return TypeSetBreakableLines }

func (AttachThread) isAction()        {}
func (DetachThread) isAction()        {}
func (RegisterSourceActor) isAction() {}
func (RemoveSourceActors) isAction()  {}
func (SetBreakableLines) isAction()   {}

package action

const (
	TypeSetBreakpoint     Type = "SET_BREAKPOINT"
	TypeRemoveBreakpoint  Type = "REMOVE_BREAKPOINT"
	TypeDisableBreakpoint Type = "DISABLE_BREAKPOINT"

	TypeUpdateEventListeners        Type = "UPDATE_EVENT_LISTENERS"
	TypeReceiveEventListenerTypes   Type = "RECEIVE_EVENT_LISTENER_TYPES"
	TypeUpdateEventListenerExpanded Type = "UPDATE_EVENT_LISTENER_EXPANDED"
	TypeToggleEventLogging          Type = "TOGGLE_EVENT_LOGGING"
)

// SetBreakpoint adds a breakpoint or replaces the one at the same location.
type SetBreakpoint struct {
	Breakpoint Breakpoint `json:"breakpoint"`
}

type RemoveBreakpoint struct {
	Location  Location `json:"location"`
	SourceURL string   `json:"source_url,omitempty"`
}

type DisableBreakpoint struct {
	Location  Location `json:"location"`
	SourceURL string   `json:"source_url,omitempty"`
	Disabled  bool     `json:"disabled"`
}

// UpdateEventListeners replaces the set of active event breakpoints.
type UpdateEventListeners struct {
	Active []string `json:"active"`
}

// ReceiveEventListenerTypes is one phase of fetching the available
// event breakpoint categories from the server.
type ReceiveEventListenerTypes struct {
	Async
	Categories []EventCategory `json:"categories,omitempty"`
}

func (a ReceiveEventListenerTypes) WithAsync(as Async) AsyncAction {
	a.Async = as
	return a
}

type UpdateEventListenerExpanded struct {
	Expanded []string `json:"expanded"`
}

type ToggleEventLogging struct {
	LogEvents bool `json:"log_events"`
}

func (SetBreakpoint) Type() Type               { return TypeSetBreakpoint }
func (RemoveBreakpoint) Type() Type            { return TypeRemoveBreakpoint }
func (DisableBreakpoint) Type() Type           { return TypeDisableBreakpoint }
func (UpdateEventListeners) Type() Type        { return TypeUpdateEventListeners }
func (ReceiveEventListenerTypes) Type() Type   { return TypeReceiveEventListenerTypes }
func (UpdateEventListenerExpanded) Type() Type { return TypeUpdateEventListenerExpanded }
func (ToggleEventLogging) Type() Type          { return TypeToggleEventLogging }

func (SetBreakpoint) isAction()               {}
func (RemoveBreakpoint) isAction()            {}
func (DisableBreakpoint) isAction()           {}
func (UpdateEventListeners) isAction()        {}
func (ReceiveEventListenerTypes) isAction()   {}
func (UpdateEventListenerExpanded) isAction() {}
func (ToggleEventLogging) isAction()          {}

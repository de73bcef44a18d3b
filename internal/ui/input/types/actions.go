package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ToggleAction struct {
	Index int // -1 for current
}

func (a ToggleAction) Type() string { return "toggle" }

// SetAllCheckedAction is a click on the bulk control
type SetAllCheckedAction struct {
	On bool
}

func (a SetAllCheckedAction) Type() string { return "set_all_checked" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Command actions
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ClosePreviewAction struct{}

func (a ClosePreviewAction) Type() string { return "close_preview" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

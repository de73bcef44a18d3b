package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dlpick/internal/ui/input/types"
)

// PreviewMode is active while the in-app batch preview is open. Keys it does
// not consume scroll the preview.
type PreviewMode struct {
	keys KeyMap
}

func NewPreviewMode(keys KeyMap) *PreviewMode {
	return &PreviewMode{keys: keys}
}

func (m *PreviewMode) Name() string {
	return "preview"
}

func (m *PreviewMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PreviewMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.ClosePreviewAction{}}
}

func (m *PreviewMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Close):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, false
}

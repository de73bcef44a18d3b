package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlpick/internal/domain"
	"dlpick/internal/selection"
	"dlpick/internal/ui/input/modes"
	"dlpick/internal/ui/input/types"
	"dlpick/internal/ui/logic"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newContext(t *testing.T, items ...domain.Item) *ModelContext {
	t.Helper()
	c := selection.NewController()
	require.NoError(t, c.Ingest(items))
	n := logic.NewNavigator()
	n.SetTotal(c.Len())
	return &ModelContext{Controller: c, Navigator: n}
}

var (
	available = domain.Item{Name: "a", Device: "d1", Path: "/a", Status: domain.StatusAvailable}
	scheduled = domain.Item{Name: "b", Device: "d2", Path: "/b", Status: domain.StatusScheduled}
)

func TestNavigationKeys(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available, scheduled)

	cases := map[string]tea.KeyMsg{
		"up":       {Type: tea.KeyUp},
		"down":     runes("j"),
		"home":     runes("g"),
		"end":      runes("G"),
		"pageup":   {Type: tea.KeyPgUp},
		"pagedown": {Type: tea.KeyPgDown},
	}
	for want, msg := range cases {
		actions, consumed := h.HandleKey(msg, ctx)
		assert.True(t, consumed, want)
		assert.Equal(t, []types.Action{types.NavigateAction{Direction: want}}, actions, want)
	}
}

func TestToggleIgnoredOnDisabledRow(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available, scheduled)

	actions, consumed := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace}, ctx)
	assert.True(t, consumed)
	assert.Equal(t, []types.Action{types.ToggleAction{Index: -1}}, actions)

	ctx.Navigator.Move(logic.DirectionDown)
	actions, consumed = h.HandleKey(runes("x"), ctx)
	assert.True(t, consumed)
	assert.Empty(t, actions)
}

func TestBulkKeyFollowsControl(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available, domain.Item{Name: "c", Device: "d3", Path: "/c", Status: domain.StatusAvailable})

	actions, _ := h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.SetAllCheckedAction{On: true}}, actions)

	// Indeterminate also turns everything on
	ctx.Controller.Toggle(available.ID())
	actions, _ = h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.SetAllCheckedAction{On: true}}, actions)

	ctx.Controller.SelectAll()
	actions, _ = h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.SetAllCheckedAction{On: false}}, actions)
}

func TestDeselectOnlyWithSelection(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available)

	actions, consumed := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.True(t, consumed)
	assert.Empty(t, actions)

	ctx.Controller.SelectAll()
	actions, _ = h.HandleKey(runes("A"), ctx)
	assert.Equal(t, []types.Action{types.DeselectAllAction{}}, actions)
}

func TestCommandKeys(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitAction{}}, actions)

	actions, _ = h.HandleKey(runes("r"), ctx)
	assert.Equal(t, []types.Action{types.ReloadAction{}}, actions)

	actions, _ = h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)

	_, consumed := h.HandleKey(runes("z"), ctx)
	assert.False(t, consumed)
}

func TestPreviewModeCloses(t *testing.T) {
	h := New(modes.DefaultKeyMap())
	ctx := newContext(t, available)

	assert.Empty(t, h.ChangeMode(types.ModePreview, ctx))
	assert.Equal(t, types.ModePreview, h.CurrentMode())

	// Navigation keys are left for the preview viewport
	_, consumed := h.HandleKey(runes("j"), ctx)
	assert.False(t, consumed)

	actions, consumed := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.True(t, consumed)
	assert.Equal(t, []types.Action{types.ClosePreviewAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

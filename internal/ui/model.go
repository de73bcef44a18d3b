package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dlpick/internal/config"
	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
	"dlpick/internal/logging"
	"dlpick/internal/selection"
	"dlpick/internal/transfer"
	"dlpick/internal/ui/handlers"
	"dlpick/internal/ui/input"
	"dlpick/internal/ui/input/modes"
	inputtypes "dlpick/internal/ui/input/types"
	"dlpick/internal/ui/logic"
	"dlpick/internal/ui/state"
	"dlpick/internal/ui/views"
)

// NoSelectionNotice is shown when a submit finds nothing checked
const NoSelectionNotice = "No files selected"

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	state      *state.AppState
	controller *selection.Controller
	sink       transfer.Sink
	pager      *transfer.Pager
	log        *logging.Logger

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        modes.KeyMap
	preview     viewport.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	navigator    *logic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around ctrl. Submitted batches go to sink.
func NewModel(bus eventbus.EventBus, cfg *config.Config, ctrl *selection.Controller, sink transfer.Sink, log *logging.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if ctrl == nil {
		ctrl = selection.NewController()
	}
	if log == nil {
		log = logging.Nop()
	}

	appState := state.NewAppState()
	nav := logic.NewNavigator()
	keys := modes.DefaultKeyMap()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		controller:   ctrl,
		sink:         sink,
		pager:        transfer.NewPager(nil),
		log:          log.With("ui"),
		help:         help.New(),
		keys:         keys,
		preview:      viewport.New(60, 10),
		navigator:    nav,
		renderer:     views.NewRenderer(cfg.UI.ShowPath),
		eventHandler: handlers.NewEventHandler(appState, ctrl, nav, log),
		inputHandler: input.New(keys),
	}

	ctrl.OnAggregateChange(func(s domain.AggregateState, flags domain.ControlFlags) {
		m.log.Debug().
			Str("state", s.String()).
			Bool("checked", flags.Checked).
			Bool("indeterminate", flags.Indeterminate).
			Msg("bulk control changed")
		m.publish(domain.SelectionChangedEvent{
			State:    s,
			Selected: ctrl.SelectedCount(),
			Eligible: len(ctrl.Eligible()),
		})
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetSourceName sets the source label shown in the title bar
func (m *Model) SetSourceName(name string) {
	m.state.SourceName = name
}

// Controller returns the selection controller driven by this model
func (m *Model) Controller() *selection.Controller {
	return m.controller
}

// Init requests the first load and starts the reload timer
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.requestLoad()}
	if d := m.config.Source.Interval(); d > 0 {
		cmds = append(cmds, reloadTick(d))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{
			Controller: m.controller,
			Navigator:  m.navigator,
		}

		actions, consumed := m.inputHandler.HandleKey(msg, ctx)
		if !consumed {
			// Unhandled keys scroll the preview popup
			if m.inputHandler.CurrentMode() == inputtypes.ModePreview {
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		SourceName:     m.state.SourceName,
		LastBatch:      m.lastBatchLabel(),
		Loading:        m.state.Loading,
		Loaded:         m.controller.Loaded(),
		Items:          m.controller.Items(),
		Cursor:         m.navigator.Cursor(),
		ViewportOffset: m.navigator.ViewportOffset(),
		ViewportHeight: m.navigator.ViewportHeight(),
		Control:        m.controller.Control(),
		SelectedCount:  m.controller.SelectedCount(),
		StatusMessage:  m.state.StatusMessage,
		StatusKind:     m.state.StatusKind,
		HelpView:       m.help.View(m.keys),
		ShowPreview:    m.state.ShowPreview,
	}
	if m.state.ShowPreview {
		vs.PreviewContent = m.previewPopupContent()
	}
	return m.renderer.Render(vs)
}

// lastBatchLabel names the last queued batch by its short id
func (m *Model) lastBatchLabel() string {
	b := m.state.LastBatch
	if b == nil {
		return ""
	}
	id := b.ID
	if len(id) > 8 {
		id = id[:8]
	}
	files := "files"
	if b.Len() == 1 {
		files = "file"
	}
	return fmt.Sprintf("Queued %s (%d %s)", id, b.Len(), files)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.Debug().Str("action", action.Type()).Msg("processAction")

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Move(logic.Direction(a.Direction))

	case inputtypes.ToggleAction:
		index := a.Index
		if index < 0 {
			index = m.navigator.Cursor()
		}
		item, ok := m.controller.Item(index)
		if !ok {
			return nil
		}
		row := views.Row{Item: item}
		if id, ok := row.Toggle(); ok {
			m.controller.Toggle(id)
		}

	case inputtypes.SetAllCheckedAction:
		m.controller.SetAllChecked(a.On)

	case inputtypes.DeselectAllAction:
		m.controller.DeselectAll()

	case inputtypes.SubmitAction:
		return m.submit()

	case inputtypes.ReloadAction:
		return m.requestLoad()

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewportHeight()

	case inputtypes.ClosePreviewAction:
		m.state.ClosePreview()

	case inputtypes.QuitAction:
		m.log.Info().Bool("force", a.Force).Msg("quit")
		return tea.Quit
	}

	return nil
}

// submit hands the checked files to the sink and previews the batch
func (m *Model) submit() tea.Cmd {
	batch, err := m.controller.Submit(m.sink)
	if errors.Is(err, selection.ErrNoSelection) {
		return m.setStatus(NoSelectionNotice, views.StatusWarning)
	}
	if err != nil {
		m.log.Error().Err(err).Msg("submit failed")
		return m.setStatus(fmt.Sprintf("Error: %v", err), views.StatusError)
	}

	m.state.RecordBatch(batch)
	m.log.Info().Str("batch", batch.ID).Int("files", batch.Len()).Msg("batch queued")
	m.publish(domain.TransferQueuedEvent{
		BatchID:     batch.ID,
		Descriptors: batch.Descriptors,
		QueuedAt:    batch.CreatedAt,
	})

	cmds := []tea.Cmd{m.setStatus(fmt.Sprintf("Queued %d files", batch.Len()), views.StatusSuccess)}
	if m.config.Transfer.Preview {
		cmds = append(cmds, m.showPreview(batch))
	}
	return tea.Batch(cmds...)
}

// showPreview shows the batch in ov, or in the popup when there is no program
func (m *Model) showPreview(batch transfer.Batch) tea.Cmd {
	if !m.pager.Available() {
		m.openPreviewPopup(batch)
		return nil
	}

	return func() tea.Msg {
		// Pause rendering while ov owns the terminal
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(batch)

		m.program.Send(resumeRenderingMsg{})

		return previewPagerMsg{batch: batch, err: err}
	}
}

func (m *Model) openPreviewPopup(batch transfer.Batch) {
	m.preview.SetContent(batch.Text())
	m.preview.GotoTop()
	m.state.OpenPreview(fmt.Sprintf("Batch %s (%d files)", batch.ID, batch.Len()))

	ctx := &input.ModelContext{Controller: m.controller, Navigator: m.navigator}
	for _, action := range m.inputHandler.ChangeMode(inputtypes.ModePreview, ctx) {
		m.processAction(action)
	}
}

func (m *Model) previewPopupContent() string {
	styles := m.renderer.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.UnsetMarginBottom().Render(m.state.PreviewTitle))
	b.WriteString("\n\n")
	b.WriteString(m.preview.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Dim.Render("esc to close"))
	return b.String()
}

// requestLoad asks the loader for a fresh list; the answer arrives as an EventMsg.
// The answer always replaces the list, even when a timer load is already pending.
func (m *Model) requestLoad() tea.Cmd {
	if m.state.Loading {
		m.state.PeriodicLoad = false
		return nil
	}
	m.state.Loading = true
	m.state.PeriodicLoad = false
	m.publish(domain.LoadRequestedEvent{Source: m.state.SourceName})
	return tick()
}

// requestPeriodicLoad is requestLoad for the refresh timer
func (m *Model) requestPeriodicLoad() tea.Cmd {
	if m.state.Loading {
		return nil
	}
	cmd := m.requestLoad()
	m.state.PeriodicLoad = true
	return cmd
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if seq := m.eventHandler.HandleEvent(msg.Event); seq > 0 {
			return m, clearStatusAfter(seq)
		}
		return m, nil

	case tickMsg:
		// Keep the spinner going only while a load is pending
		if m.inPagerMode || !m.state.Loading {
			return m, nil
		}
		return m, tick()

	case reloadTickMsg:
		d := m.config.Source.Interval()
		if d <= 0 {
			return m, nil
		}
		var cmds []tea.Cmd
		if !m.inPagerMode {
			cmds = append(cmds, m.requestPeriodicLoad())
		}
		cmds = append(cmds, reloadTick(d))
		return m, tea.Batch(cmds...)

	case previewPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			m.log.Warn().Err(msg.err).Str("batch", msg.batch.ID).Msg("pager failed, falling back to popup")
			m.openPreviewPopup(msg.batch)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.ClearStatus(msg.seq)
		return m, nil
	}

	// Other messages are handled elsewhere
	return m, nil
}

func (m *Model) setStatus(msg string, kind views.StatusKind) tea.Cmd {
	return clearStatusAfter(m.state.SetStatus(msg, kind))
}

func (m *Model) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// updateViewportHeight calculates the available height for the file list
func (m *Model) updateViewportHeight() {
	// Padding (2), title (2), bulk control and column headers (2), status (2)
	reservedLines := 8
	reservedLines += lipgloss.Height(m.help.View(m.keys))

	m.navigator.SetViewportHeight(m.height - reservedLines)

	w := m.width - 12
	if w < 20 {
		w = 20
	}
	h := m.height - 12
	if h < 3 {
		h = 3
	}
	m.preview.Width = w
	m.preview.Height = h
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func reloadTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return reloadTickMsg(t)
	})
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

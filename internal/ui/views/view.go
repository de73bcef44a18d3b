package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dlpick/internal/domain"
)

// EmptyStateText is shown until a file list has been supplied
const EmptyStateText = "No files available."

// StatusKind selects the style of the status line
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	SourceName     string
	LastBatch      string // short label of the last queued batch
	Loading        bool
	Loaded         bool
	Items          []domain.Item
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	Control        domain.ControlFlags
	SelectedCount  int
	StatusMessage  string
	StatusKind     StatusKind
	HelpView       string
	ShowPreview    bool
	PreviewContent string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	rowRender   *RowRenderer
	headRender  *HeaderRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showPath bool) *Renderer {
	styles := NewStyles()
	rows := NewRowRenderer(styles, showPath)
	return &Renderer{
		styles:      styles,
		rowRender:   rows,
		headRender:  NewHeaderRenderer(styles, rows),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	innerWidth := termWidth - 4 // Account for main container padding

	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n")

	if !state.Loaded {
		content.WriteString(r.styles.Dim.Render(EmptyStateText))
	} else {
		content.WriteString(r.headRender.Render(state.Control, state.SelectedCount, innerWidth))
		content.WriteString("\n")
		if len(state.Items) == 0 {
			content.WriteString(r.styles.Dim.Render(EmptyStateText))
		} else {
			content.WriteString(r.renderList(state, innerWidth))
		}
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.renderStatus(state))
	}

	if state.HelpView != "" && !state.ShowPreview {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}
		helpLines := lipgloss.Height(state.HelpView)

		if paddingNeeded := availableLines - currentLines - helpLines; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowPreview && state.PreviewContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.PreviewContent, state.Height, termWidth, r.styles.PreviewBox)
	}
	return finalContent
}

// renderTitle renders the logo with right-aligned source and loading indicators
func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("dlpick")

	var indicators []string
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Loading", spinner[frame]))
	}
	if state.LastBatch != "" {
		indicators = append(indicators, state.LastBatch)
	}
	if state.SourceName != "" {
		indicators = append(indicators, state.SourceName)
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderList renders the visible window of rows with scroll indicators
func (r *Renderer) renderList(state ViewState, width int) string {
	total := len(state.Items)
	height := state.ViewportHeight
	if height <= 0 {
		height = total
	}

	offset := state.ViewportOffset
	if offset < 0 || offset >= total {
		offset = 0
	}

	needsTopIndicator := offset > 0
	effectiveHeight := height
	if needsTopIndicator {
		effectiveHeight--
	}
	needsBottomIndicator := offset+effectiveHeight < total
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	end := offset + effectiveHeight
	if end > total {
		end = total
	}
	for i := offset; i < end; i++ {
		row := Row{Item: state.Items[i], Focused: i == state.Cursor}
		lines = append(lines, r.rowRender.Render(row, width))
	}

	if needsBottomIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatus(state ViewState) string {
	style := r.styles.Status
	switch state.StatusKind {
	case StatusSuccess:
		style = style.Foreground(r.styles.StatusSuccess.GetForeground())
	case StatusWarning:
		style = style.Foreground(r.styles.StatusWarning.GetForeground())
	case StatusError:
		style = style.Foreground(r.styles.StatusError.GetForeground())
	}
	return style.Render(state.StatusMessage)
}

package transfer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager previews batch text with the ov pager
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a pager bound to the running program
func NewPager(program *tea.Program) *Pager {
	return &Pager{program: program}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Available reports whether the pager can take over the terminal
func (p *Pager) Available() bool {
	return p != nil && p.program != nil
}

// Show displays a batch with a short header
func (p *Pager) Show(b Batch) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch %s (%d files)\n\n", b.ID, b.Len()))
	sb.WriteString(b.Text())
	sb.WriteString("\n")
	return p.ShowText(sb.String())
}

// ShowText runs ov on content, releasing and restoring the terminal
func (p *Pager) ShowText(content string) error {
	if !p.Available() {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// let ov exit fully before bubbletea takes the screen back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

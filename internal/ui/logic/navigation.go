package logic

// Direction represents cursor movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Navigator handles cursor movement and viewport management over a flat list
type Navigator struct {
	cursor         int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// Cursor returns the focused row
func (n *Navigator) Cursor() int {
	return n.cursor
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of lines available to the list
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetTotal updates the number of rows, clamping the cursor
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
	n.ensureCursorVisible()
}

// SetViewportHeight updates the available height for the list
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureCursorVisible()
}

// Reset moves the cursor back to the top
func (n *Navigator) Reset() {
	n.cursor = 0
	n.viewportOffset = 0
}

// Move moves the cursor and returns whether it changed
func (n *Navigator) Move(dir Direction) bool {
	if n.total == 0 {
		return false
	}
	old := n.cursor

	pageSize := n.viewportHeight - 2 // Leave some overlap
	if pageSize < 1 {
		pageSize = 1
	}

	switch dir {
	case DirectionUp:
		n.cursor--
	case DirectionDown:
		n.cursor++
	case DirectionPageUp:
		n.cursor -= pageSize
	case DirectionPageDown:
		n.cursor += pageSize
	case DirectionHome:
		n.cursor = 0
	case DirectionEnd:
		n.cursor = n.total - 1
	}

	n.clamp()
	n.ensureCursorVisible()
	return n.cursor != old
}

func (n *Navigator) clamp() {
	if n.cursor >= n.total {
		n.cursor = n.total - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
}

// ensureCursorVisible adjusts the viewport to keep the cursor visible
func (n *Navigator) ensureCursorVisible() {
	if n.cursor < n.viewportOffset {
		n.viewportOffset = n.cursor
	}

	// Scroll indicators take a line each
	effectiveHeight := n.viewportHeight
	if n.viewportOffset > 0 {
		effectiveHeight--
	}
	if n.viewportOffset+effectiveHeight < n.total {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	if n.cursor >= n.viewportOffset+effectiveHeight {
		n.viewportOffset = n.cursor - effectiveHeight + 1
	}

	maxOffset := n.total - effectiveHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

// Package ui implements the interactive terminal explorer: a collapsible
// tree over a parsed document, with a path prompt for jumping directly to
// any addressable value.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jvx/pkg/selector"
	"github.com/oakwood-commons/jvx/pkg/tree"
	"github.com/oakwood-commons/jvx/pkg/value"
)

// row is one visible line of the flattened tree.
type row struct {
	node  *tree.Node
	path  selector.Path
	depth int
}

// Model is the Bubble Tea model for the explorer.
type Model struct {
	Root  *value.Value
	Nodes []*tree.Node

	NoColor bool
	AppName string

	rows     []row
	expanded map[string]bool
	cursor   int
	offset   int

	pathInput   textinput.Model
	inputActive bool

	helpVisible bool
	errMsg      string

	width  int
	height int

	styles Styles
}

// NewModel builds an explorer over root with everything collapsed.
func NewModel(root *value.Value) *Model {
	ti := textinput.New()
	ti.Placeholder = `path, e.g. items[0].name or $["key.with.dots"]`
	ti.CharLimit = 500
	ti.SetWidth(80)
	ti.Prompt = ": "

	m := &Model{
		Root:      root,
		Nodes:     tree.Build(root),
		AppName:   "jvx",
		expanded:  map[string]bool{},
		pathInput: ti,
		width:     80,
		height:    24,
		styles:    DefaultStyles(),
	}
	m.rebuildRows()
	return m
}

// rowPath joins prefix and the node's selector. The single leaf produced by
// a scalar root carries the empty selector and addresses the root itself.
func rowPath(prefix selector.Path, n *tree.Node) selector.Path {
	if n.Selector.IsNone() {
		return prefix.Clone()
	}
	return prefix.Child(n.Selector)
}

// rebuildRows reflattens the tree honoring the current expand state and
// clamps the cursor.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	var walk func(nodes []*tree.Node, prefix selector.Path, depth int)
	walk = func(nodes []*tree.Node, prefix selector.Path, depth int) {
		for _, n := range nodes {
			p := rowPath(prefix, n)
			m.rows = append(m.rows, row{node: n, path: p, depth: depth})
			if len(n.Children) > 0 && m.expanded[p.String()] {
				walk(n.Children, p, depth+1)
			}
		}
	}
	walk(m.Nodes, nil, 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollIntoView()
}

// Rows exposes the current visible rows for tests.
func (m *Model) Rows() []row { return m.rows }

// Cursor returns the current cursor index.
func (m *Model) Cursor() int { return m.cursor }

// SelectedPath returns the path of the row under the cursor.
func (m *Model) SelectedPath() selector.Path {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].path
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pathInput.SetWidth(maxInt(20, m.width-4))
		m.scrollIntoView()
		return m, nil

	case tea.KeyMsg:
		if m.inputActive {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.helpVisible {
			m.helpVisible = false
		}
		return m, nil

	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.viewHeight())
	case "pgdown":
		m.moveCursor(m.viewHeight())
	case "home", "g":
		m.cursor = 0
		m.scrollIntoView()
	case "end", "G":
		m.cursor = maxInt(0, len(m.rows)-1)
		m.scrollIntoView()

	case "right", "l", "enter":
		m.expandCurrent()
	case "left", "h", "backspace":
		m.collapseCurrent()
	case "space":
		m.toggleCurrent()
	case "E":
		m.setAllExpanded(true)
	case "W":
		m.setAllExpanded(false)

	case ":", "p":
		m.inputActive = true
		m.pathInput.SetValue(m.SelectedPath().String())
		m.pathInput.SetCursor(len(m.pathInput.Value()))
		return m, m.pathInput.Focus()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.inputActive = false
		m.pathInput.Blur()
		return m, nil
	case "enter":
		input := strings.TrimSpace(m.pathInput.Value())
		m.inputActive = false
		m.pathInput.Blur()
		m.jumpToPath(input)
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// jumpToPath parses input, verifies the path resolves, expands every
// ancestor, and moves the cursor onto the target row.
func (m *Model) jumpToPath(input string) {
	path, err := selector.Parse(input)
	if err != nil {
		m.errMsg = fmt.Sprintf("invalid path: %v", err)
		return
	}
	if _, ok := tree.Select(m.Root, path); !ok {
		m.errMsg = fmt.Sprintf("path not found: %s", path.String())
		return
	}
	for i := 1; i < len(path); i++ {
		m.expanded[path[:i].String()] = true
	}
	m.rebuildRows()
	for i, r := range m.rows {
		if r.path.Equal(path) {
			m.cursor = i
			break
		}
	}
	m.scrollIntoView()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollIntoView()
}

func (m *Model) expandCurrent() {
	if len(m.rows) == 0 {
		return
	}
	r := m.rows[m.cursor]
	if len(r.node.Children) == 0 {
		return
	}
	key := r.path.String()
	if m.expanded[key] {
		// Already open: step into the first child.
		m.moveCursor(1)
		return
	}
	m.expanded[key] = true
	m.rebuildRows()
}

func (m *Model) collapseCurrent() {
	if len(m.rows) == 0 {
		return
	}
	r := m.rows[m.cursor]
	key := r.path.String()
	if len(r.node.Children) > 0 && m.expanded[key] {
		delete(m.expanded, key)
		m.rebuildRows()
		return
	}
	// Leaf or collapsed node: move up to the parent row.
	if len(r.path) == 0 {
		return
	}
	parent := r.path[:len(r.path)-1]
	for i, cand := range m.rows {
		if cand.path.Equal(parent) {
			m.cursor = i
			m.scrollIntoView()
			return
		}
	}
}

func (m *Model) toggleCurrent() {
	if len(m.rows) == 0 {
		return
	}
	r := m.rows[m.cursor]
	if len(r.node.Children) == 0 {
		return
	}
	key := r.path.String()
	if m.expanded[key] {
		delete(m.expanded, key)
	} else {
		m.expanded[key] = true
	}
	m.rebuildRows()
}

func (m *Model) setAllExpanded(open bool) {
	if !open {
		m.expanded = map[string]bool{}
		m.rebuildRows()
		return
	}
	var walk func(nodes []*tree.Node, prefix selector.Path)
	walk = func(nodes []*tree.Node, prefix selector.Path) {
		for _, n := range nodes {
			p := rowPath(prefix, n)
			if len(n.Children) > 0 {
				m.expanded[p.String()] = true
				walk(n.Children, p)
			}
		}
	}
	walk(m.Nodes, nil)
	m.rebuildRows()
}

// viewHeight is the number of rows the tree viewport can show.
func (m *Model) viewHeight() int {
	// Header, separator, and a three-line footer.
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) scrollIntoView() {
	vh := m.viewHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render builds the full frame as a plain string. Kept separate from View
// so snapshots and tests can inspect the output directly.
func (m *Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSeparator())
	b.WriteString("\n")

	if m.helpVisible {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderRows())
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("%s — %d top-level nodes", m.AppName, len(m.Nodes))
	title = truncate(title, m.width)
	if m.NoColor {
		return title
	}
	return m.styles.Header.Render(title)
}

func (m *Model) renderSeparator() string {
	sep := strings.Repeat("─", maxInt(1, m.width))
	if m.NoColor {
		return sep
	}
	return m.styles.Dim.Render(sep)
}

func (m *Model) renderRows() string {
	var b strings.Builder
	vh := m.viewHeight()
	end := minInt(m.offset+vh, len(m.rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < vh; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	marker := "  "
	if len(r.node.Children) > 0 {
		if m.expanded[r.path.String()] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	line := strings.Repeat("  ", r.depth) + marker + r.node.Label
	line = truncate(line, m.width)

	if i == m.cursor {
		if m.NoColor {
			return "> " + line
		}
		return m.styles.Cursor.Render(line)
	}
	if m.NoColor {
		return "  " + line
	}
	if len(r.node.Children) > 0 {
		return m.styles.Branch.Render(line)
	}
	return m.styles.Leaf.Render(line)
}

func (m *Model) renderFooter() string {
	var b strings.Builder

	if m.inputActive {
		b.WriteString(m.pathInput.View())
	} else {
		pathText := "Path: " + m.SelectedPath().String()
		if m.NoColor {
			b.WriteString(truncate(pathText, m.width))
		} else {
			b.WriteString(m.styles.Path.Render(truncate(pathText, m.width)))
		}
	}
	b.WriteString("\n")

	switch {
	case m.errMsg != "":
		if m.NoColor {
			b.WriteString(truncate(m.errMsg, m.width))
		} else {
			b.WriteString(m.styles.Error.Render(truncate(m.errMsg, m.width)))
		}
	default:
		b.WriteString(m.renderPreview())
	}
	b.WriteString("\n")

	hint := "j/k move · l expand · h collapse · : path · ? help · q quit"
	if m.NoColor {
		b.WriteString(truncate(hint, m.width))
	} else {
		b.WriteString(m.styles.HelpHint.Render(truncate(hint, m.width)))
	}
	return b.String()
}

// renderPreview shows the value at the selected path, re-resolved from the
// root so the footer always reflects what the path actually addresses.
func (m *Model) renderPreview() string {
	val, ok := tree.Select(m.Root, m.SelectedPath())
	if !ok {
		return ""
	}
	preview := truncate(val.String(), m.width)
	if m.NoColor {
		return preview
	}
	return m.styles.Dim.Render(preview)
}

func (m *Model) renderHelp() string {
	lines := []string{
		"Keys",
		"",
		"  j / down       move down",
		"  k / up         move up",
		"  l / right      expand (or step into)",
		"  h / left       collapse (or go to parent)",
		"  space          toggle node",
		"  E / W          expand / collapse everything",
		"  g / G          jump to top / bottom",
		"  : or p         jump to a path",
		"  ?              toggle this help",
		"  q / ctrl+c     quit",
	}
	var b strings.Builder
	vh := m.viewHeight()
	for i := 0; i < vh; i++ {
		if i < len(lines) {
			b.WriteString(truncate(lines[i], m.width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, maxw int) string {
	if maxw <= 0 || runewidth.StringWidth(s) <= maxw {
		return s
	}
	if maxw <= 3 {
		return runewidth.Truncate(s, maxw, "")
	}
	return runewidth.Truncate(s, maxw-3, "") + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

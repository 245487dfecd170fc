package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jvx/pkg/value"
)

func sampleModel(t *testing.T) *Model {
	t.Helper()
	root, err := value.ParseJSON([]byte(`{
		"name": "ada",
		"items": [{"id": 1}, {"id": 2}],
		"empty": {}
	}`))
	require.NoError(t, err)
	m := NewModel(root)
	m.NoColor = true
	m.width = 100
	m.height = 30
	return m
}

func press(m *Model, code rune, text string) *Model {
	result, _ := m.Update(tea.KeyPressMsg{Code: code, Text: text})
	return result.(*Model)
}

func TestNewModelStartsCollapsed(t *testing.T) {
	m := sampleModel(t)
	require.Len(t, m.Rows(), 3)
	assert.Equal(t, "$.name", m.Rows()[0].path.String())
	assert.Equal(t, "$.items", m.Rows()[1].path.String())
	assert.Equal(t, "$.empty", m.Rows()[2].path.String())
}

func TestExpandAndCollapse(t *testing.T) {
	m := sampleModel(t)
	m.cursor = 1 // items

	m = press(m, 'l', "l")
	require.Len(t, m.Rows(), 5)
	assert.Equal(t, "$.items[0]", m.Rows()[2].path.String())
	assert.Equal(t, "$.items[1]", m.Rows()[3].path.String())

	m = press(m, 'h', "h")
	assert.Len(t, m.Rows(), 3)
}

func TestExpandOnOpenNodeStepsIn(t *testing.T) {
	m := sampleModel(t)
	m.cursor = 1
	m = press(m, 'l', "l")
	m = press(m, 'l', "l")
	assert.Equal(t, "$.items[0]", m.SelectedPath().String())
}

func TestCollapseOnLeafGoesToParent(t *testing.T) {
	m := sampleModel(t)
	m.cursor = 1
	m = press(m, 'l', "l")
	m = press(m, 'j', "j") // onto items[0]
	m = press(m, 'l', "l") // expand items[0]
	m = press(m, 'j', "j") // onto id leaf
	assert.Equal(t, "$.items[0].id", m.SelectedPath().String())

	m = press(m, 'h', "h") // leaf: jump to parent
	assert.Equal(t, "$.items[0]", m.SelectedPath().String())
}

func TestExpandAllAndCollapseAll(t *testing.T) {
	m := sampleModel(t)
	m = press(m, 'E', "E")
	require.Len(t, m.Rows(), 7)
	m = press(m, 'W', "W")
	assert.Len(t, m.Rows(), 3)
}

func TestJumpToPathExpandsAncestors(t *testing.T) {
	m := sampleModel(t)
	m.jumpToPath("items[1].id")
	assert.Empty(t, m.errMsg)
	assert.Equal(t, "$.items[1].id", m.SelectedPath().String())
}

func TestJumpToPathErrors(t *testing.T) {
	m := sampleModel(t)

	m.jumpToPath("items[9]")
	assert.Contains(t, m.errMsg, "path not found")

	m.jumpToPath("items[")
	assert.Contains(t, m.errMsg, "invalid path")
}

func TestPathPromptFlow(t *testing.T) {
	m := sampleModel(t)
	m = press(m, ':', ":")
	require.True(t, m.inputActive)

	m.pathInput.SetValue("name")
	result, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = result.(*Model)
	assert.False(t, m.inputActive)
	assert.Equal(t, "$.name", m.SelectedPath().String())
}

func TestScalarRootSingleRow(t *testing.T) {
	root, err := value.ParseJSON([]byte(`42`))
	require.NoError(t, err)
	m := NewModel(root)
	m.NoColor = true

	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "$", m.SelectedPath().String())
	assert.Equal(t, "42", m.Rows()[0].node.Label)
}

func TestViewRendersLabelsAndFooter(t *testing.T) {
	m := sampleModel(t)
	out := m.render()

	assert.Contains(t, out, `name: "ada"`)
	assert.Contains(t, out, "items")
	assert.Contains(t, out, "Path: $.name")

	// Preview line re-resolves the selected path from the root.
	assert.Contains(t, out, `"ada"`)
}

func TestViewHelpOverlay(t *testing.T) {
	m := sampleModel(t)
	m = press(m, '?', "?")
	out := m.render()
	assert.Contains(t, out, "toggle this help")
	assert.False(t, strings.Contains(out, `name: "ada"`))
}

func TestQuitKeys(t *testing.T) {
	m := sampleModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
}

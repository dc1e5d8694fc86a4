package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/utfcodec/checked"
	"github.com/wippyai/utfcodec/codec"
)

// walkerModel steps a checked.Iterator over a buffer one code point at a
// time. Malformed bytes are stepped over one at a time.
type walkerModel struct {
	err    error
	styles styles
	data   []byte
	input  textinput.Model
	it     checked.Iterator[[]byte]
	state  walkerState
}

type walkerState int

const (
	stateWalk walkerState = iota
	stateEdit
)

func newWalkerModel(data []byte, st styles) *walkerModel {
	ti := textinput.New()
	ti.Prompt = "text: "
	ti.Placeholder = "type text to walk"
	ti.Width = 60
	ti.SetValue(string(checked.ReplaceInvalid(nil, data)))

	m := &walkerModel{input: ti, styles: st}
	m.load(data)
	if len(data) == 0 {
		m.state = stateEdit
		m.input.Focus()
	}
	return m
}

func (m *walkerModel) load(data []byte) {
	m.data = data
	m.it, _ = checked.Range(data)
	m.err = nil
}

func (m *walkerModel) Init() tea.Cmd {
	return nil
}

func (m *walkerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state == stateEdit {
		switch key.String() {
		case "enter", "esc":
			m.input.Blur()
			m.state = stateWalk
			m.load([]byte(m.input.Value()))
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "right", "l":
		m.forward()
	case "left", "h":
		m.backward()
	case "home", "g":
		m.it, _ = checked.Range(m.data)
		m.err = nil
	case "end", "G":
		_, m.it = checked.Range(m.data)
		m.err = nil
	case "e", "tab":
		m.state = stateEdit
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *walkerModel) forward() {
	pos := m.it.Base()
	if pos >= len(m.data) {
		return
	}
	m.err = m.it.Next()
	if m.err != nil {
		m.it, _ = checked.NewIterator(m.data, pos+1, 0, len(m.data))
	}
}

func (m *walkerModel) backward() {
	pos := m.it.Base()
	if pos == 0 {
		return
	}
	m.err = m.it.Prev()
	if m.err != nil {
		m.it, _ = checked.NewIterator(m.data, pos-1, 0, len(m.data))
	}
}

// current returns the sequence under the cursor, one byte when malformed.
func (m *walkerModel) current() (cp rune, seq []byte, err error) {
	pos := m.it.Base()
	if pos >= len(m.data) {
		return 0, nil, nil
	}
	cp, next, err := checked.Next(m.data, pos)
	if err != nil {
		return codec.ErrorChar, m.data[pos : pos+1], err
	}
	return cp, m.data[pos:next], nil
}

func (m *walkerModel) View() string {
	var b strings.Builder
	st := m.styles

	b.WriteString(st.title("UTF Walker"))
	b.WriteString(fmt.Sprintf(" %d bytes\n\n", len(m.data)))

	if m.state == stateEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(st.help("enter walk • ctrl+c quit"))
		return b.String()
	}

	pos := m.it.Base()
	cp, seq, err := m.current()
	b.WriteString(string(checked.ReplaceInvalid(nil, m.data[:pos])))
	switch {
	case seq == nil:
		b.WriteString(st.selected(" "))
	case err != nil:
		b.WriteString(st.err(string(codec.ReplacementChar)))
	default:
		b.WriteString(st.selected(string(seq)))
	}
	b.WriteString(string(checked.ReplaceInvalid(nil, m.data[pos+len(seq):])))
	b.WriteString("\n\n")

	b.WriteString(st.offset(fmt.Sprintf("offset %d/%d", pos, len(m.data))))
	switch {
	case seq == nil:
		b.WriteString("  end of text")
	case err != nil:
		b.WriteString("  " + st.bytes(hexBytes(seq)) + "  " + st.err(err.Error()))
	default:
		units := codec.EncodeUTF16(nil, cp)
		b.WriteString(fmt.Sprintf("  %s  %s  utf16 %04X",
			st.cp(fmt.Sprintf("U+%04X %q", cp, cp)), st.bytes(hexBytes(seq)), units))
	}
	if m.err != nil && err == nil {
		b.WriteString("\n" + st.err("skipped: "+m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(st.help("←/→ step • home/end jump • e edit • q quit"))
	return b.String()
}

func runInteractive(data []byte) error {
	p := tea.NewProgram(newWalkerModel(data, colorStyles()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

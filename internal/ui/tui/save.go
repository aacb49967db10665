package tui

// saveModal is the single-line path prompt shown when saving the report.
// The input is kept as runes so the cursor moves by character.
type saveModal struct {
	active bool
	input  []rune
	cursor int
}

func (s *saveModal) open(initial string) {
	s.active = true
	s.input = []rune(initial)
	s.cursor = len(s.input)
}

func (s *saveModal) value() string { return string(s.input) }

func (s *saveModal) insert(rs ...rune) {
	tail := append([]rune(nil), s.input[s.cursor:]...)
	s.input = append(append(s.input[:s.cursor], rs...), tail...)
	s.cursor += len(rs)
}

func (s *saveModal) backspace() {
	if s.cursor == 0 {
		return
	}
	s.input = append(s.input[:s.cursor-1], s.input[s.cursor:]...)
	s.cursor--
}

func (s *saveModal) deleteChar() {
	if s.cursor < len(s.input) {
		s.input = append(s.input[:s.cursor], s.input[s.cursor+1:]...)
	}
}

func (s *saveModal) moveLeft() {
	s.cursor = max(s.cursor-1, 0)
}

func (s *saveModal) moveRight() {
	s.cursor = min(s.cursor+1, len(s.input))
}

func (s *saveModal) render() string {
	before := string(s.input[:s.cursor])
	after := string(s.input[s.cursor:])
	return "  " + styleSavePrompt.Render("Save report to: ") +
		styleSaveInput.Render(before) + styleSaveInput.Render("█") + styleSaveInput.Render(after)
}

package bingo

import "testing"

func grid(rows, cols int) [][]string {
	layout := make([][]string, rows)
	for r := 0; r < rows; r++ {
		layout[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			layout[r][c] = string(rune('A'+r)) + string(rune('a'+c))
		}
	}
	return layout
}

func allMarks(rows, cols int) []Mark {
	var marks []Mark
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			marks = append(marks, Mark{Row: r, Col: c})
		}
	}
	return marks
}

func rowMarks(row, cols int) []Mark {
	var marks []Mark
	for c := 0; c < cols; c++ {
		marks = append(marks, Mark{Row: row, Col: c})
	}
	return marks
}

func TestCountCompletedLinesEmptyMarks(t *testing.T) {
	for _, size := range [][2]int{{3, 3}, {5, 4}, {12, 12}} {
		if got := CountCompletedLines(grid(size[0], size[1]), nil); got != 0 {
			t.Fatalf("%dx%d empty marks: got %d completed lines, want 0", size[0], size[1], got)
		}
	}
}

func TestCountCompletedLinesFullGrid(t *testing.T) {
	for _, size := range [][2]int{{3, 3}, {4, 6}, {12, 12}} {
		rows, cols := size[0], size[1]
		want := rows + cols + 2
		if got := CountCompletedLines(grid(rows, cols), allMarks(rows, cols)); got != want {
			t.Fatalf("%dx%d fully marked: got %d completed lines, want %d", rows, cols, got, want)
		}
	}
}

func TestCountCompletedLinesSingleRow(t *testing.T) {
	layout := grid(4, 5)
	marks := rowMarks(1, 5)
	if got := CountCompletedLines(layout, marks); got != 1 {
		t.Fatalf("one full row: got %d completed lines, want 1", got)
	}
	if !Evaluate(layout, marks, RuleSingleLine) {
		t.Fatalf("single-line should be valid with one full row")
	}
	if Evaluate(layout, marks, RuleTwoLines) {
		t.Fatalf("two-lines should be invalid with one full row")
	}
}

func TestCountCompletedLinesDiagonals(t *testing.T) {
	layout := grid(3, 3)
	main := []Mark{{0, 0}, {1, 1}, {2, 2}}
	if got := CountCompletedLines(layout, main); got != 1 {
		t.Fatalf("main diagonal: got %d, want 1", got)
	}
	anti := []Mark{{0, 2}, {1, 1}, {2, 0}}
	if got := CountCompletedLines(layout, anti); got != 1 {
		t.Fatalf("anti diagonal: got %d, want 1", got)
	}
	// Both diagonals share the center cell but count independently.
	both := []Mark{{0, 0}, {2, 2}, {0, 2}, {2, 0}, {1, 1}}
	if got := CountCompletedLines(layout, both); got != 2 {
		t.Fatalf("both diagonals: got %d, want 2", got)
	}
}

func TestCountCompletedLinesRectangularDiagonalSpan(t *testing.T) {
	// On a 3x5 grid the diagonals span min(R,C)=3 cells.
	layout := grid(3, 5)
	if got := CountCompletedLines(layout, []Mark{{0, 0}, {1, 1}, {2, 2}}); got != 1 {
		t.Fatalf("3x5 main diagonal: got %d, want 1", got)
	}
	if got := CountCompletedLines(layout, []Mark{{0, 4}, {1, 3}, {2, 2}}); got != 1 {
		t.Fatalf("3x5 anti diagonal: got %d, want 1", got)
	}
}

func TestOutOfBoundsMarksIgnored(t *testing.T) {
	layout := grid(3, 3)
	marks := append(rowMarks(0, 3), Mark{Row: -1, Col: 0}, Mark{Row: 0, Col: 99}, Mark{Row: 7, Col: 7})
	if got := CountCompletedLines(layout, marks); got != 1 {
		t.Fatalf("out-of-bounds marks changed the line count: got %d, want 1", got)
	}

	// Out-of-range coordinates must not count toward the full-card total.
	padded := append([]Mark(nil), allMarks(3, 3)[:8]...)
	for i := 0; i < 10; i++ {
		padded = append(padded, Mark{Row: 100 + i, Col: 100})
	}
	if Evaluate(layout, padded, RuleFullCard) {
		t.Fatalf("full-card valid with only 8 of 9 real cells marked")
	}
}

func TestEvaluateFullCard(t *testing.T) {
	for _, size := range [][2]int{{3, 3}, {1, 1}, {5, 7}} {
		rows, cols := size[0], size[1]
		layout := grid(rows, cols)
		marks := allMarks(rows, cols)
		if !Evaluate(layout, marks, RuleFullCard) {
			t.Fatalf("%dx%d: full card should be valid", rows, cols)
		}
		if Evaluate(layout, marks[:len(marks)-1], RuleFullCard) {
			t.Fatalf("%dx%d: removing one mark should make full-card invalid", rows, cols)
		}
	}
}

func TestEvaluateLineThresholds(t *testing.T) {
	layout := grid(5, 5)
	two := append(rowMarks(0, 5), rowMarks(3, 5)...)
	three := append(append([]Mark(nil), two...), rowMarks(4, 5)...)

	cases := []struct {
		name  string
		marks []Mark
		rule  Rule
		want  bool
	}{
		{"two rows vs two-lines", two, RuleTwoLines, true},
		{"two rows vs three-lines", two, RuleThreeLines, false},
		{"three rows vs three-lines", three, RuleThreeLines, true},
		{"three rows vs full-card", three, RuleFullCard, false},
	}
	for _, tc := range cases {
		if got := Evaluate(layout, tc.marks, tc.rule); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEvaluateDegenerate(t *testing.T) {
	if got := CountCompletedLines(nil, nil); got != 0 {
		t.Fatalf("nil layout: got %d, want 0", got)
	}
	if got := CountCompletedLines([][]string{{}}, nil); got != 0 {
		t.Fatalf("zero-column layout: got %d, want 0", got)
	}
	for _, rule := range []Rule{RuleSingleLine, RuleTwoLines, RuleThreeLines, RuleFullCard} {
		if Evaluate(nil, []Mark{{0, 0}}, rule) {
			t.Fatalf("empty layout should be invalid under %s", rule)
		}
	}
}

func TestParseRule(t *testing.T) {
	for _, name := range []string{"single-line", "two-lines", "three-lines", "full-card"} {
		if _, ok := ParseRule(name); !ok {
			t.Fatalf("ParseRule(%q) rejected a valid rule", name)
		}
	}
	if _, ok := ParseRule("four-corners"); ok {
		t.Fatalf("ParseRule accepted an unknown rule")
	}
}

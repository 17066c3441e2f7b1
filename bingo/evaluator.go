package bingo

type cell struct {
	row, col int
}

// markSet collapses marks into a set of distinct in-bounds cells.
// Out-of-bounds coordinates do not correspond to a real cell and are dropped.
func markSet(rows, cols int, marks []Mark) map[cell]bool {
	set := make(map[cell]bool, len(marks))
	for _, m := range marks {
		if m.Row < 0 || m.Row >= rows || m.Col < 0 || m.Col >= cols {
			continue
		}
		set[cell{m.Row, m.Col}] = true
	}
	return set
}

// CountCompletedLines counts how many of the grid's candidate lines are fully
// marked: each of the R rows, each of the C columns, the main diagonal (i,i)
// and the anti-diagonal (i, C-1-i), both over i < min(R,C). Lines are counted
// independently, so a fully marked grid yields R+C+2.
func CountCompletedLines(layout [][]string, marks []Mark) int {
	rows := len(layout)
	if rows == 0 {
		return 0
	}
	cols := len(layout[0])
	if cols == 0 {
		return 0
	}

	marked := markSet(rows, cols, marks)
	count := 0

	for r := 0; r < rows; r++ {
		complete := true
		for c := 0; c < cols; c++ {
			if !marked[cell{r, c}] {
				complete = false
				break
			}
		}
		if complete {
			count++
		}
	}

	for c := 0; c < cols; c++ {
		complete := true
		for r := 0; r < rows; r++ {
			if !marked[cell{r, c}] {
				complete = false
				break
			}
		}
		if complete {
			count++
		}
	}

	span := rows
	if cols < span {
		span = cols
	}
	diag, anti := true, true
	for i := 0; i < span; i++ {
		if !marked[cell{i, i}] {
			diag = false
		}
		if !marked[cell{i, cols - 1 - i}] {
			anti = false
		}
	}
	if diag {
		count++
	}
	if anti {
		count++
	}

	return count
}

// Evaluate decides whether the marked cells satisfy rule on the given layout.
// It always returns a definite answer: empty layouts and empty mark sets are
// simply not winning.
func Evaluate(layout [][]string, marks []Mark, rule Rule) bool {
	rows := len(layout)
	if rows == 0 {
		return false
	}
	cols := len(layout[0])
	if cols == 0 {
		return false
	}

	switch rule {
	case RuleSingleLine:
		return CountCompletedLines(layout, marks) >= 1
	case RuleTwoLines:
		return CountCompletedLines(layout, marks) >= 2
	case RuleThreeLines:
		return CountCompletedLines(layout, marks) >= 3
	case RuleFullCard:
		// Checked against distinct real cells, not the raw marks length, so a
		// marks set padded with out-of-range coordinates cannot fake a full card.
		return len(markSet(rows, cols, marks)) >= rows*cols
	}
	return false
}

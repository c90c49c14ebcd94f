package typing

// Mark classifies a single target position.
type Mark int

const (
	Pending Mark = iota
	Correct
	Incorrect
)

func (m Mark) String() string {
	switch m {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Classify returns one Mark per rune of the target.
func Classify(s State) []Mark {
	target := []rune(s.Target)
	typed := []rune(s.Typed)
	marks := make([]Mark, len(target))
	for i, r := range target {
		switch {
		case i >= len(typed):
			marks[i] = Pending
		case typed[i] == r:
			marks[i] = Correct
		default:
			marks[i] = Incorrect
		}
	}
	return marks
}

// CorrectCount returns the number of positions where the input matches the target.
func CorrectCount(s State) int {
	n := 0
	for _, m := range Classify(s) {
		if m == Correct {
			n++
		}
	}
	return n
}

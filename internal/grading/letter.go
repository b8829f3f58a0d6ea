package grading

// PassingScore is the lowest score shown as a pass.
const PassingScore = 70

var letterBands = []struct {
	min    int
	letter string
}{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
}

// LetterGrade maps a 0-100 score to A-F.
func LetterGrade(score int) string {
	for _, b := range letterBands {
		if score >= b.min {
			return b.letter
		}
	}
	return "F"
}

// Passing reports whether score meets PassingScore.
func Passing(score int) bool {
	return score >= PassingScore
}

// Band is the inclusive score range of one letter grade.
type Band struct {
	Letter string
	Min    int
	Max    int
}

// Bands lists every letter grade from A down to F.
func Bands() []Band {
	bands := make([]Band, 0, len(letterBands)+1)
	upper := maxScore
	for _, b := range letterBands {
		bands = append(bands, Band{Letter: b.letter, Min: b.min, Max: upper})
		upper = b.min - 1
	}
	return append(bands, Band{Letter: "F", Min: 0, Max: upper})
}

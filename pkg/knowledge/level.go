package knowledge

import "fmt"

// Level is a student's mastery of one topic.
type Level int

const (
	NotStarted  Level = 1
	NeedsReview Level = 2
	Proficient  Level = 3
	Mastered    Level = 4
)

// Levels lists every level in legend order, strongest first.
var Levels = []Level{Mastered, Proficient, NeedsReview, NotStarted}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool { return l >= NotStarted && l <= Mastered }

// String returns the canonical English label.
func (l Level) String() string {
	switch l {
	case NotStarted:
		return "Not Started"
	case NeedsReview:
		return "Needs Review"
	case Proficient:
		return "Proficient"
	case Mastered:
		return "Mastered"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Index returns the zero-based position of l for four-entry lookup tables
// ordered NotStarted..Mastered. It panics on an invalid level.
func (l Level) Index() int {
	if !l.Valid() {
		panic(fmt.Sprintf("knowledge: invalid level %d", int(l)))
	}
	return int(l) - 1
}

// Floor raises l to floor when l is below it. A zero floor leaves l
// unchanged, and so does an invalid l, so validation still sees it.
func (l Level) Floor(floor Level) Level {
	if floor != 0 && l.Valid() && l < floor {
		return floor
	}
	return l
}

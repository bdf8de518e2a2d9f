package game

// Color classifies one guessed letter.
type Color string

const (
	ColorGreen  Color = "green"  // right letter, right position
	ColorOrange Color = "orange" // right letter, wrong position
	ColorGrey   Color = "grey"   // letter not in the remaining target letters
)

// WordLength is the fixed length of every playable word.
const WordLength = 5

// Score compares a guess against the target word and returns one color per
// letter using the standard two-pass Wordle algorithm. Both strings must be
// exactly five uppercase A-Z letters; validation happens at the session
// boundary, not here.
//
// Pass 1 marks exact positional matches green and consumes those target
// letters. Pass 2 marks remaining guess letters orange while an unconsumed
// instance exists in the target, otherwise grey. The total green+orange count
// for any letter never exceeds that letter's count in the target.
func Score(guess, target string) []Color {
	feedback := make([]Color, WordLength)

	// Count of target letters not consumed by an exact match.
	var remaining [26]int
	for i := 0; i < WordLength; i++ {
		if guess[i] == target[i] {
			feedback[i] = ColorGreen
		} else {
			remaining[target[i]-'A']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if feedback[i] == ColorGreen {
			continue
		}
		j := int(guess[i] - 'A')
		if j >= 0 && j < 26 && remaining[j] > 0 {
			feedback[i] = ColorOrange
			remaining[j]--
		} else {
			feedback[i] = ColorGrey
		}
	}

	return feedback
}

package quiz

import (
	"math/rand"

	"adaptive-quiz-service/internal/domain"
)

// ShuffleOptions returns a copy of the question with its options in a
// uniformly random order and the answer index remapped to follow the option
// that was originally correct. The remap works on index identity, so
// duplicate option texts stay unambiguous. The input is never mutated.
func ShuffleOptions(rng *rand.Rand, q domain.Question) domain.Question {
	perm := rng.Perm(len(q.Options))

	shuffled := make([]string, len(q.Options))
	newAnswer := q.AnswerIndex
	for newPos, origPos := range perm {
		shuffled[newPos] = q.Options[origPos]
		if origPos == q.AnswerIndex {
			newAnswer = newPos
		}
	}

	out := q
	out.Options = shuffled
	out.AnswerIndex = newAnswer
	return out
}

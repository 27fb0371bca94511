package game

import "math/rand"

// wordBank is the static pool of guessable terms. Selection is uniform
// with replacement, so the same word can recur within one game.
var wordBank = []string{
	"watermelon", "cat", "dog", "airplane", "apple", "banana", "car",
	"sun", "moon", "star", "flower", "tree", "house", "umbrella",
	"book", "pen", "computer", "phone", "cake", "ice cream", "ball",
	"fish", "bird", "rabbit", "bear", "tiger", "lion",
}

// Words returns a copy of the word bank, mostly for tests and tooling.
func Words() []string {
	list := make([]string, len(wordBank))
	copy(list, wordBank)
	return list
}

func randomWord(rng *rand.Rand) string {
	if rng == nil {
		return wordBank[rand.Intn(len(wordBank))]
	}
	return wordBank[rng.Intn(len(wordBank))]
}

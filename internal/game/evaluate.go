package game

// Evaluate scores guess against secret.
//
// Pass 1 marks exact matches Correct and claims those secret positions.
// Pass 2 walks the remaining guess letters left to right and claims the first
// unclaimed matching secret position, marking the letter Present. Letters
// left without a claim stay Absent, so a letter repeated in the guess more
// often than it remains in the secret is Present only for the first
// occurrences.
//
// The result always has the guess's length. Callers validate lengths; with
// mismatched input, positions past the end of the secret are never Correct.
func Evaluate(secret, guess Word) Evaluation {
	s := []rune(string(secret))
	g := []rune(string(guess))

	res := make(Evaluation, len(g))
	claimed := make([]bool, len(s))
	for i := range res {
		res[i] = Absent
	}

	for i := range g {
		if i < len(s) && g[i] == s[i] {
			res[i] = Correct
			claimed[i] = true
		}
	}

	for i := range g {
		if res[i] == Correct {
			continue
		}
		for j := range s {
			if !claimed[j] && s[j] == g[i] {
				res[i] = Present
				claimed[j] = true
				break
			}
		}
	}
	return res
}

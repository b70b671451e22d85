// Package align compares a spoken or typed attempt against the expected
// word sequence of a sentence and grades every attempted word.
package align

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/domain"
)

// Status grades a single attempted word.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusAlmost  Status = "almost"
	StatusWrong   Status = "wrong"
)

// almostThreshold is the minimum similarity score (0..100) for a word
// to count as almost right instead of wrong.
const almostThreshold = 70

// Expected is one word of the reference sentence, in order.
type Expected struct {
	WordID uuid.UUID
	Word   string
}

// Result grades one token of the attempt. Matched carries the id of the
// expected word the token was aligned to, or nil when the token matched
// nothing in the reference.
type Result struct {
	Attempted string
	Expected  string
	Status    Status
	Matched   *uuid.UUID
	Score     int
}

// Tokenize splits an attempt into comparison tokens. Punctuation-only
// tokens are dropped so that "hello, world!" and "hello world" compare
// equal.
func Tokenize(s string) []string {
	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimFunc(f, isEdgePunct)
		if trimmed == "" || domain.IsPunctuation(trimmed) {
			continue
		}
		tokens = append(tokens, trimmed)
	}
	return tokens
}

// Similarity scores two words on a 0..100 scale. Comparison ignores
// case and surrounding whitespace. Two empty words are identical.
func Similarity(a, b string) int {
	na := domain.NormalizeToken(a)
	nb := domain.NormalizeToken(b)
	if na == nb {
		return 100
	}

	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(na, nb)
	return (longest - dist) * 100 / longest
}

// Compare aligns the attempt tokens against the expected sequence and
// returns exactly one result per attempt token, in attempt order.
// Extra tokens the reference does not contain come back as wrong with
// no matched word.
func Compare(attempt []string, expected []Expected) []Result {
	n, m := len(attempt), len(expected)
	if n == 0 {
		return []Result{}
	}

	// Edit-distance table over attempt (rows) and expected (columns).
	// Cost of a substitution step is scaled by dissimilarity so that a
	// near-miss prefers pairing up over an insert/delete pair.
	const unit = 100
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = i * unit
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = j * unit
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := dp[i-1][j-1] + unit - Similarity(attempt[i-1], expected[j-1].Word)
			del := dp[i-1][j] + unit
			ins := dp[i][j-1] + unit
			dp[i][j] = min3(sub, del, ins)
		}
	}

	// Backtrack, preferring the diagonal so an attempted word pairs
	// with an expected word whenever the cost allows it.
	results := make([]Result, 0, n)
	i, j := n, m
	for i > 0 {
		switch {
		case j > 0 && dp[i][j] == dp[i-1][j-1]+unit-Similarity(attempt[i-1], expected[j-1].Word):
			score := Similarity(attempt[i-1], expected[j-1].Word)
			id := expected[j-1].WordID
			results = append(results, Result{
				Attempted: attempt[i-1],
				Expected:  expected[j-1].Word,
				Status:    statusFor(score),
				Matched:   &id,
				Score:     score,
			})
			i--
			j--
		case dp[i][j] == dp[i-1][j]+unit:
			results = append(results, Result{
				Attempted: attempt[i-1],
				Status:    StatusWrong,
			})
			i--
		default:
			// Skipped expected word, produces no attempt result.
			j--
		}
	}

	reverse(results)
	return results
}

// CheckCloze grades a single typed answer against the hidden word. The
// exercise shows the word's first letter, so only the remainder is
// typed and it must match exactly, ignoring case. There is no
// near-miss tier for cloze.
func CheckCloze(answer, expected string) Status {
	runes := []rune(domain.NormalizeToken(expected))
	if len(runes) == 0 {
		return StatusWrong
	}
	if domain.NormalizeToken(answer) == string(runes[1:]) {
		return StatusCorrect
	}
	return StatusWrong
}

func statusFor(score int) Status {
	switch {
	case score == 100:
		return StatusCorrect
	case score >= almostThreshold:
		return StatusAlmost
	default:
		return StatusWrong
	}
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func reverse(rs []Result) {
	for l, r := 0, len(rs)-1; l < r; l, r = l+1, r-1 {
		rs[l], rs[r] = rs[r], rs[l]
	}
}

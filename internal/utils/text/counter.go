// Package text holds small text helpers shared by the assistant providers.
package text

// CountRunes counts Unicode characters rather than bytes, so prompt and
// reply lengths are logged consistently across providers regardless of the
// language the conversation is in.
func CountRunes(s string) int {
	return len([]rune(s))
}

package ids

// Chooser picks an index in [0, n). *math/rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

// Generate draws length characters independently and uniformly from alphabet.
func Generate(chooser Chooser, alphabet string, length int) string {
	if length <= 0 || alphabet == "" {
		return ""
	}

	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[chooser.Intn(len(alphabet))]
	}
	return string(out)
}

package links

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	shortIDLength = 10
	// shortIDAlphabet avoids characters that are easy to confuse when a
	// user copies a link ID from a channel listing.
	shortIDAlphabet = "23456789abcdefghijkmnpqrstuvwxyz"
)

// NewShortID generates a compact human-typable channel link identifier.
func NewShortID() (string, error) {
	return gonanoid.Generate(shortIDAlphabet, shortIDLength)
}

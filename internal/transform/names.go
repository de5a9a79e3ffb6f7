package transform

import "math/rand/v2"

var (
	nameAdjectives = []string{"Happy", "Sad", "Angry", "Excited", "Bored"}
	nameNouns      = []string{"Cat", "Dog", "Fish", "Bird", "Hamster"}
)

// RandomWebhookName returns a short adjective+noun display name used when
// creating bridge webhooks.
func RandomWebhookName() string {
	return nameAdjectives[rand.IntN(len(nameAdjectives))] + nameNouns[rand.IntN(len(nameNouns))]
}

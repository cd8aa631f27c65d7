package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quick", "Sly", "Cool", "Wild", "Steady", "Gracious", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Smiling", "Tall", "Grand", "Prime",
	"Bluffing", "Folding", "Raising", "Charging", "Shooting", "Bouncing", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Mouse", "Alligator", "Shark", "Hippo", "Giraffe", "Lion", "Tiger",
	"Bear", "Otter", "Dolphin", "Porcupine", "Hedgehog", "Snake", "Lizard", "Chipmunk",
	"Eagle", "Wolf", "Fox", "Armadillo", "Rhino", "Reindeer", "Deer", "Panda",
}

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := rand.Intn(len(adjectives))
	animalsIndex := rand.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}

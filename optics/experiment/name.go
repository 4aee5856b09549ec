package experiment

import (
	"math/rand"
	"time"
)

var (
	adjectives = []string{
		"amber", "angled", "bent", "bright", "brilliant", "clear", "cold", "crystal",
		"dim", "doubled", "faint", "flickering", "frosted", "gilded", "glancing",
		"glassy", "golden", "hollow", "iridescent", "lambent", "luminous", "mirrored",
		"opal", "pale", "polished", "prismatic", "quiet", "radiant", "scattered",
		"shimmering", "silver", "slanted", "split", "spectral", "still", "twilight",
		"violet", "wandering", "warm", "white",
	}

	nouns = []string{
		"aurora", "beam", "caustic", "corona", "dawn", "dusk", "ember", "facet",
		"flare", "flash", "fringe", "glare", "gleam", "glint", "glow", "halo",
		"horizon", "lantern", "lens", "mirage", "mirror", "moon", "nova", "pane",
		"photon", "prism", "rainbow", "ray", "reflection", "shard", "shadow",
		"sheen", "spark", "spectrum", "star", "sunbeam", "sunset", "twinkle",
		"wave", "window",
	}
)

// GenerateRunName creates a memorable "adjective-noun" name
func GenerateRunName() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return adjectives[rng.Intn(len(adjectives))] + "-" + nouns[rng.Intn(len(nouns))]
}

// GenerateRunID makes the name unique by appending a timestamp
func GenerateRunID() string {
	timestamp := time.Now().UTC().Format("20060102-150405.000")
	return GenerateRunName() + "-" + timestamp
}

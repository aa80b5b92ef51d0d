package content

// Built-in content used when no content file is configured.

var defaultJokes = []string{ //nolint:gochecknoglobals
	"JA <name-holder>: Parallel lines have so much in common. It’s a shame they’ll never meet.",
	"JB <name-holder>: My granddad has the heart of a lion and a lifetime ban from the zoo.",
	"JC <name-holder>: Why don’t skeletons fight each other? They don’t have the guts.",
	"JD <name-holder>: What do you call an alligator in a vest? An investigator.",
}

var defaultProverbs = []string{ //nolint:gochecknoglobals
	"PA <name-holder>: The early bird might get the worm, but the second mouse gets the cheese.",
	"PB <name-holder>: Fortune favors the bold.",
	"PC <name-holder>: A watched pot never boils.",
	"PD <name-holder>: Better to light a candle than to curse the darkness.",
}

// Default returns the built-in library.
func Default() *Library {
	l, err := NewLibrary(defaultJokes, defaultProverbs)
	if err != nil {
		panic(err) // built-in lists are non-empty
	}
	return l
}

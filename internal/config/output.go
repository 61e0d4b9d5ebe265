package config

// OutputConfig holds settings related to game record output.
type OutputConfig struct {
	// Event, Site, White and Black fill the PGN tag roster.
	Event string
	Site  string
	White string
	Black string

	// Colour enables ANSI colours when drawing the board.
	Colour bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Event:  "Casual game",
		Site:   "?",
		White:  "Human",
		Black:  "chessplay",
		Colour: true,
	}
}

package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile  string
	Provider string
	URL      string
	Model    string

	// translate flags
	From       string
	To         string
	OutputFile string

	// history flags
	Limit int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		From:  "English",
		Limit: 20,
	}
}

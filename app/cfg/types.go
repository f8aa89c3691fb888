package cfg

type Cfg struct {
	// Application configuration
	Port       string
	DBPath     string
	LimitsFile string

	// Fetch configuration
	UserAgent    string
	FetchTimeout int // seconds

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

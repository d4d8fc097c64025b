package output

// Default limits for formatted output.
const (
	// DefaultMaxFlightResults is the default number of flight offers rendered.
	DefaultMaxFlightResults = 10

	// DefaultMaxAirportResults is the default number of airport search matches rendered.
	DefaultMaxAirportResults = 20

	// DefaultAirportListLimit is the number of entries shown by the airports://all resource.
	DefaultAirportListLimit = 100

	// AbsoluteMaxItems caps every limit, whatever the configuration says.
	// Large airport listings otherwise fill the assistant's context window.
	AbsoluteMaxItems = 1000
)

// Config holds the output limits.
type Config struct {
	// MaxFlightResults limits flight offers per search.
	// Default: 10
	MaxFlightResults int `json:"maxFlightResults" yaml:"max_flight_results" env:"MAX_FLIGHT_RESULTS" env-default:"10"`

	// MaxAirportResults limits airport_search matches.
	// Default: 20
	MaxAirportResults int `json:"maxAirportResults" yaml:"max_airport_results" env:"MAX_AIRPORT_RESULTS" env-default:"20"`

	// AirportListLimit limits the airports://all listing.
	// Default: 100
	AirportListLimit int `json:"airportListLimit" yaml:"airport_list_limit" env:"AIRPORT_LIST_LIMIT" env-default:"100"`
}

// DefaultConfig returns a Config with the default limits.
func DefaultConfig() *Config {
	return &Config{
		MaxFlightResults:  DefaultMaxFlightResults,
		MaxAirportResults: DefaultMaxAirportResults,
		AirportListLimit:  DefaultAirportListLimit,
	}
}

// Validate returns a copy with out-of-range values replaced by defaults or capped.
func (c *Config) Validate() *Config {
	validated := *c

	validated.MaxFlightResults = EffectiveLimit(validated.MaxFlightResults, DefaultMaxFlightResults)
	validated.MaxAirportResults = EffectiveLimit(validated.MaxAirportResults, DefaultMaxAirportResults)
	validated.AirportListLimit = EffectiveLimit(validated.AirportListLimit, DefaultAirportListLimit)

	return &validated
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// TruncationWarning contains information about response truncation.
type TruncationWarning struct {
	// Shown is the number of items returned
	Shown int `json:"shown"`

	// Total is the total number of items before truncation
	Total int `json:"total"`

	// Message is a human-readable warning message
	Message string `json:"message"`
}

// Omitted returns how many items were left out.
func (w *TruncationWarning) Omitted() int {
	if w == nil {
		return 0
	}
	return w.Total - w.Shown
}

package styles

// Symbols holds the icon prefix for each rendered line
type Symbols struct {
	Location    string
	Temperature string
	Wind        string
	Humidity    string
	Condition   string
	Calendar    string
	MaxTemp     string
	MinTemp     string
	AvgTemp     string
	Precip      string
	UV          string
	Alert       string
}

// Emoji symbols, the default
var emojiSymbols = Symbols{
	Location:    "📍",
	Temperature: "🌡️",
	Wind:        "🌬️",
	Humidity:    "💧",
	Condition:   "🌤️",
	Calendar:    "📅",
	MaxTemp:     "📈",
	MinTemp:     "📉",
	AvgTemp:     "🌡️",
	Precip:      "🌧️",
	UV:          "🌞",
	Alert:       "🚨",
}

// Plain symbols for terminals without emoji fonts
var plainSymbols = Symbols{
	Location:    "@",
	Temperature: "*",
	Wind:        "~",
	Humidity:    "%",
	Condition:   "#",
	Calendar:    ">",
	MaxTemp:     "+",
	MinTemp:     "-",
	AvgTemp:     "=",
	Precip:      ",",
	UV:          "o",
	Alert:       "!",
}

// useIcons tracks whether emoji icons are enabled
var useIcons = true

// currentSymbols holds the active symbol set
var currentSymbols = emojiSymbols

// SetIcons enables or disables emoji icons
func SetIcons(enabled bool) {
	useIcons = enabled
	if enabled {
		currentSymbols = emojiSymbols
	} else {
		currentSymbols = plainSymbols
	}
}

// IconsEnabled returns whether emoji icons are enabled
func IconsEnabled() bool {
	return useIcons
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// Package modes defines the closed set of agent modes the engine supports.
// Each mode carries the full, strongly typed generation configuration.
package modes

// Key identifies a supported mode.
type Key string

const (
	// KeyISCComputer is the ISC Computer Science (Java) tutor mode.
	KeyISCComputer Key = "isc_computer"
)

// Default is the mode used when the caller supplies no key or an unknown one.
const Default = KeyISCComputer

// Tool enumerates the model tools a mode may enable.
type Tool int

const (
	// ToolGoogleSearch enables Gemini's server-side Google Search grounding.
	ToolGoogleSearch Tool = iota
)

// Config is the immutable per-mode generation configuration.
type Config struct {
	Key               Key
	ModelName         string
	Temperature       float32
	SystemInstruction string
	Tools             []Tool

	// SearchScopeEnv names the environment variable holding the Google
	// Custom Search engine id (cx) scoped to this mode. Empty scope disables
	// the media search for the mode.
	SearchScopeEnv string
}

var registry = map[Key]Config{
	KeyISCComputer: {
		Key:               KeyISCComputer,
		ModelName:         "gemini-3-pro-preview",
		Temperature:       0.1,
		SystemInstruction: iscComputerInstruction,
		Tools:             []Tool{ToolGoogleSearch},
		SearchScopeEnv:    "GOOGLE_SEARCH_CX_ID_ISC_COMPUTER",
	},
}

// Resolve maps a caller-supplied mode string to its configuration. Unknown or
// empty keys resolve to the default mode.
func Resolve(key string) Config {
	if cfg, ok := registry[Key(key)]; ok {
		return cfg
	}
	return registry[Default]
}

// All returns every registered mode configuration.
func All() []Config {
	configs := make([]Config, 0, len(registry))
	for _, cfg := range registry {
		configs = append(configs, cfg)
	}
	return configs
}

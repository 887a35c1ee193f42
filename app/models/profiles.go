package models

// Profile is a named set of generation parameters loaded from configuration.
type Profile struct {
	Temperature     float64 `yaml:"temperature"`
	TopP            float64 `yaml:"top_p"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// Profiles groups the parameter sets the pipeline stages pick from.
// Character generation runs hot to avoid archetypical names, review runs cool.
type Profiles struct {
	CharacterGeneration Profile `yaml:"character_generation"`
	Creative            Profile `yaml:"creative"`
	Review              Profile `yaml:"review"`
}

func (p Profile) Options(caller string) Options {
	return Options{
		Temperature:     p.Temperature,
		TopP:            p.TopP,
		MaxOutputTokens: p.MaxOutputTokens,
		Caller:          caller,
	}
}

func DefaultProfiles() Profiles {
	return Profiles{
		CharacterGeneration: Profile{Temperature: 1.5, TopP: 0.95, MaxOutputTokens: 1024},
		Creative:            Profile{Temperature: 0.9, TopP: 0.95, MaxOutputTokens: 2048},
		Review:              Profile{Temperature: 0.7, TopP: 0.8, MaxOutputTokens: 1024},
	}
}

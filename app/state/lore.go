package state

// Lore phases, in pipeline order.
const (
	PhaseNotStarted = "not_started"
	PhaseEras       = "eras"
	PhaseFactions   = "factions"
	PhaseSouls      = "characters"
	PhaseConflicts  = "conflicts"
	PhaseRoutes     = "routes"
	PhaseComplete   = "complete"
)

// Route keys for the branching structure.
const (
	RouteLight   = "light"
	RouteShadow  = "shadow"
	RouteNeutral = "neutral"
)

// VarietySeeds are drawn once per run and injected into every lore prompt so
// the stages stay thematically coherent without re-deriving randomness.
type VarietySeeds struct {
	NameCultures  []string `json:"name_cultures"`
	EmotionSeed   string   `json:"emotion_seed"`
	AestheticSeed string   `json:"aesthetic_seed"`
	ConflictSeed  string   `json:"conflict_seed"`
	BannedWords   []string `json:"banned_words,omitempty"`
}

func (s VarietySeeds) Empty() bool {
	return s.EmotionSeed == "" && s.AestheticSeed == "" && s.ConflictSeed == ""
}

type Cosmology struct {
	CreationMyth       string `json:"creation_myth"`
	DivineForces       string `json:"divine_forces"`
	ForbiddenKnowledge string `json:"forbidden_knowledge"`
}

type Era struct {
	Name          string `json:"name"`
	Duration      string `json:"duration"`
	Summary       string `json:"summary"`
	DefiningEvent string `json:"defining_event,omitempty"`
	Legacy        string `json:"legacy,omitempty"`
	IsCataclysm   bool   `json:"is_cataclysm,omitempty"`
}

type Faction struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Ideology    string   `json:"ideology"`
	HiddenTruth string   `json:"hidden_truth,omitempty"`
	DarkSecret  string   `json:"dark_secret,omitempty"`
	Rivals      []string `json:"rivals,omitempty"`
}

type LoreCharacter struct {
	Name        string            `json:"name"`
	Title       string            `json:"title,omitempty"`
	Archetype   string            `json:"archetype"`
	Faction     string            `json:"faction,omitempty"`
	Motivation  string            `json:"motivation"`
	InnerDemon  string            `json:"inner_demon,omitempty"`
	FateByRoute map[string]string `json:"fate_by_route,omitempty"`
}

type Conflict struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	RootCause string `json:"root_cause,omitempty"`
	Tragedy   string `json:"tragedy,omitempty"`
}

type Route struct {
	Name       string `json:"name"`
	Philosophy string `json:"philosophy,omitempty"`
	Sacrifice  string `json:"sacrifice,omitempty"`
	Ending     string `json:"ending,omitempty"`
}

// Lore is the mutable document for the game-lore pipeline, structurally
// parallel to Book but with its own field set and phase ledger.
type Lore struct {
	ProjectName      string           `json:"project_name"`
	Tone             string           `json:"tone"`
	VarietySeeds     VarietySeeds     `json:"variety_seeds"`
	Cosmology        *Cosmology       `json:"cosmology,omitempty"`
	Eras             []Era            `json:"eras,omitempty"`
	Factions         []Faction        `json:"factions,omitempty"`
	Characters       []LoreCharacter  `json:"characters,omitempty"`
	Conflicts        []Conflict       `json:"conflicts,omitempty"`
	Routes           map[string]Route `json:"routes,omitempty"`
	CurrentPhase     string           `json:"current_phase"`
	CompletedPhases  []string         `json:"completed_phases,omitempty"`
	DegradedSections []string         `json:"degraded_sections,omitempty"`
}

func NewLore(projectName string) *Lore {
	return &Lore{
		ProjectName:  projectName,
		Tone:         "dark_fantasy_introspective",
		CurrentPhase: PhaseNotStarted,
	}
}

func (l *Lore) CompletePhase(phase string) {
	l.CurrentPhase = phase
	for _, p := range l.CompletedPhases {
		if p == phase {
			return
		}
	}
	l.CompletedPhases = append(l.CompletedPhases, phase)
}

func (l *Lore) MarkDegraded(section string) {
	for _, s := range l.DegradedSections {
		if s == section {
			return
		}
	}
	l.DegradedSections = append(l.DegradedSections, section)
}

// HasPhase reports whether a phase's output is already present in the document.
func (l *Lore) HasPhase(phase string) bool {
	switch phase {
	case PhaseEras:
		return len(l.Eras) > 0
	case PhaseFactions:
		return len(l.Factions) > 0
	case PhaseSouls:
		return len(l.Characters) > 0
	case PhaseConflicts:
		return len(l.Conflicts) > 0
	case PhaseRoutes:
		return len(l.Routes) > 0
	default:
		return false
	}
}

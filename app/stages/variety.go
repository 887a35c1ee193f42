package stages

import (
	"math/rand"

	"GoScribeAI/app/state"
)

// Seed pools for lore variety. Drawn once per run so every phase prompt shares
// the same emotional and aesthetic anchor.
var (
	nameCulturePool = []string{
		"norse", "slavic", "celtic", "latinate", "old_english",
		"byzantine", "persian", "finno_ugric",
	}
	emotionPool = []string{
		"grief", "longing", "dread", "defiance", "guilt",
		"fragile_hope", "isolation", "obsession",
	}
	aestheticPool = []string{
		"ash_and_bone", "rust_and_brine", "candlelit_decay",
		"frozen_cathedrals", "overgrown_ruins", "starless_skies",
		"drowned_cities", "salt_and_iron",
	}
	conflictPool = []string{
		"faith_versus_power", "memory_versus_survival", "blood_debt",
		"forbidden_knowledge", "war_of_succession", "slow_apocalypse",
	}
	overusedWordsPool = []string{
		"shadow", "darkness", "ancient", "whisper", "echoes", "forgotten",
	}
)

// NewVarietySeeds draws one seed from each pool plus two name cultures and
// three banned overused words.
func NewVarietySeeds(r *rand.Rand) state.VarietySeeds {
	return state.VarietySeeds{
		NameCultures:  sample(r, nameCulturePool, 2),
		EmotionSeed:   pick(r, emotionPool),
		AestheticSeed: pick(r, aestheticPool),
		ConflictSeed:  pick(r, conflictPool),
		BannedWords:   sample(r, overusedWordsPool, 3),
	}
}

func pick(r *rand.Rand, pool []string) string {
	return pool[r.Intn(len(pool))]
}

func sample(r *rand.Rand, pool []string, n int) []string {
	idx := r.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

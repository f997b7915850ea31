package rulebook

import (
	"sync"
)

// Registry is the reload-time-loaded catalog of definitions. Lookups are O(1)
// and return nil for unknown ids; they never fail.
type Registry struct {
	mu sync.RWMutex

	races   map[string]*RaceDef
	classes map[string]*ClassDef
	skills  map[string]*SkillDef
	talents map[string]*TalentDef
	auras   map[string]*AuraDef

	// insertion order for listing surfaces (selection GUIs, commands)
	raceOrder   []string
	classOrder  []string
	talentOrder []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.replace(catalog{})
	return r
}

// catalog is one fully-loaded definition set, swapped in atomically
type catalog struct {
	races   map[string]*RaceDef
	classes map[string]*ClassDef
	skills  map[string]*SkillDef
	talents map[string]*TalentDef
	auras   map[string]*AuraDef

	raceOrder   []string
	classOrder  []string
	talentOrder []string
}

func (r *Registry) replace(c catalog) {
	if c.races == nil {
		c.races = map[string]*RaceDef{}
	}
	if c.classes == nil {
		c.classes = map[string]*ClassDef{}
	}
	if c.skills == nil {
		c.skills = map[string]*SkillDef{}
	}
	if c.talents == nil {
		c.talents = map[string]*TalentDef{}
	}
	if c.auras == nil {
		c.auras = map[string]*AuraDef{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.races = c.races
	r.classes = c.classes
	r.skills = c.skills
	r.talents = c.talents
	r.auras = c.auras
	r.raceOrder = c.raceOrder
	r.classOrder = c.classOrder
	r.talentOrder = c.talentOrder
}

// PutRace adds or replaces a race definition. Extensions and tests use the
// Put methods; file loads go through Load, which swaps the whole catalog.
func (r *Registry) PutRace(def *RaceDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.races[def.ID]; !exists {
		r.raceOrder = append(r.raceOrder, def.ID)
	}
	r.races[def.ID] = def
}

// PutClass adds or replaces a class definition
func (r *Registry) PutClass(def *ClassDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[def.ID]; !exists {
		r.classOrder = append(r.classOrder, def.ID)
	}
	r.classes[def.ID] = def
}

// PutSkill adds or replaces a skill definition
func (r *Registry) PutSkill(def *SkillDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[def.ID] = def
}

// PutTalent adds or replaces a talent definition
func (r *Registry) PutTalent(def *TalentDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.talents[def.ID]; !exists {
		r.talentOrder = append(r.talentOrder, def.ID)
	}
	r.talents[def.ID] = def
}

// PutAura adds or replaces an aura definition
func (r *Registry) PutAura(def *AuraDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auras[def.ID] = def
}

// Race returns the race definition for id, nil if unknown
func (r *Registry) Race(id string) *RaceDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.races[id]
}

// Class returns the class definition for id, nil if unknown
func (r *Registry) Class(id string) *ClassDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[id]
}

// Skill returns the skill definition for id, nil if unknown
func (r *Registry) Skill(id string) *SkillDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.skills[id]
}

// Talent returns the talent definition for id, nil if unknown
func (r *Registry) Talent(id string) *TalentDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.talents[id]
}

// Aura returns the aura definition for id, nil if unknown
func (r *Registry) Aura(id string) *AuraDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.auras[id]
}

// HasRace reports whether a race id exists
func (r *Registry) HasRace(id string) bool {
	return r.Race(id) != nil
}

// HasClass reports whether a class id exists
func (r *Registry) HasClass(id string) bool {
	return r.Class(id) != nil
}

// Races returns all races in definition-file order
func (r *Registry) Races() []*RaceDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*RaceDef, 0, len(r.raceOrder))
	for _, id := range r.raceOrder {
		out = append(out, r.races[id])
	}
	return out
}

// Classes returns all classes in definition-file order
func (r *Registry) Classes() []*ClassDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ClassDef, 0, len(r.classOrder))
	for _, id := range r.classOrder {
		out = append(out, r.classes[id])
	}
	return out
}

// SkillCount returns the number of loaded skill definitions
func (r *Registry) SkillCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skills)
}

// AuraCount returns the number of loaded aura definitions
func (r *Registry) AuraCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.auras)
}

// Talents returns all talents in definition-file order
func (r *Registry) Talents() []*TalentDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*TalentDef, 0, len(r.talentOrder))
	for _, id := range r.talentOrder {
		out = append(out, r.talents[id])
	}
	return out
}

package rulebook

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition file names inside the data directory
const (
	racesFile     = "races.yml"
	classesFile   = "classes.yml"
	skillsFile    = "skills.yml"
	talentsFile   = "talents.yml"
	cosmeticsFile = "cosmetics.yml"
)

// Load reads all definition files from dir and atomically replaces the
// catalog. A failure in one category logs a warning and leaves that category
// empty; it never prevents the other categories from loading.
func (r *Registry) Load(dir string) {
	var c catalog

	c.races, c.raceOrder = loadRaces(filepath.Join(dir, racesFile))
	c.classes, c.classOrder = loadClasses(filepath.Join(dir, classesFile))
	c.skills = loadSkills(filepath.Join(dir, skillsFile))
	c.talents, c.talentOrder = loadTalents(filepath.Join(dir, talentsFile))
	c.auras = loadAuras(filepath.Join(dir, cosmeticsFile))

	r.replace(c)
}

// sections decodes one definition file into ordered (id, node) pairs under
// the given top-level key. Errors are logged; the result is empty on failure.
func sections(path, topKey string) []idNode {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("rulebook: skipping %s: %v", filepath.Base(path), err)
		return nil
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Printf("rulebook: failed to parse %s: %v", filepath.Base(path), err)
		return nil
	}

	root, ok := doc[topKey]
	if !ok || root.Kind != yaml.MappingNode {
		return nil
	}

	out := make([]idNode, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		out = append(out, idNode{id: root.Content[i].Value, node: root.Content[i+1]})
	}
	return out
}

type idNode struct {
	id   string
	node *yaml.Node
}

type statMapYAML map[string]float64

// toStatMap keeps only recognized stat keys; unknown keys are dropped
func (m statMapYAML) toStatMap() StatMap {
	out := StatMap{}
	for k, v := range m {
		if key, ok := ParseStatKey(k); ok {
			out[key] = v
		}
	}
	return out
}

type raceYAML struct {
	Name        string      `yaml:"name"`
	Lore        []string    `yaml:"lore"`
	Icon        string      `yaml:"icon"`
	Scale       *float64    `yaml:"scale"`
	AddStats    statMapYAML `yaml:"addStats"`
	Multipliers statMapYAML `yaml:"multipliers"`
	Cosmetics   struct {
		Aura string `yaml:"aura"`
	} `yaml:"cosmetics"`
}

func loadRaces(path string) (map[string]*RaceDef, []string) {
	races := map[string]*RaceDef{}
	var order []string

	for _, sec := range sections(path, "races") {
		var y raceYAML
		if err := sec.node.Decode(&y); err != nil {
			log.Printf("rulebook: skipping race %q: %v", sec.id, err)
			continue
		}

		scale := 1.0
		if y.Scale != nil {
			scale = *y.Scale
		}

		races[sec.id] = &RaceDef{
			ID:          sec.id,
			Name:        defaultStr(y.Name, sec.id),
			Lore:        y.Lore,
			Icon:        defaultStr(y.Icon, "STONE"),
			Scale:       scale,
			AddStats:    y.AddStats.toStatMap(),
			Multipliers: y.Multipliers.toStatMap(),
			AuraID:      y.Cosmetics.Aura,
		}
		order = append(order, sec.id)
	}
	return races, order
}

type classYAML struct {
	Name        string      `yaml:"name"`
	Role        string      `yaml:"role"`
	Lore        []string    `yaml:"lore"`
	Icon        string      `yaml:"icon"`
	AddStats    statMapYAML `yaml:"addStats"`
	Multipliers statMapYAML `yaml:"multipliers"`
	Skills      []string    `yaml:"skills"`
	Talents     []string    `yaml:"talents"`
}

func loadClasses(path string) (map[string]*ClassDef, []string) {
	classes := map[string]*ClassDef{}
	var order []string

	for _, sec := range sections(path, "classes") {
		var y classYAML
		if err := sec.node.Decode(&y); err != nil {
			log.Printf("rulebook: skipping class %q: %v", sec.id, err)
			continue
		}

		classes[sec.id] = &ClassDef{
			ID:          sec.id,
			Name:        defaultStr(y.Name, sec.id),
			Role:        defaultStr(y.Role, "NONE"),
			Lore:        y.Lore,
			Icon:        defaultStr(y.Icon, "STONE"),
			AddStats:    y.AddStats.toStatMap(),
			Multipliers: y.Multipliers.toStatMap(),
			SkillIDs:    y.Skills,
			TalentIDs:   y.Talents,
		}
		order = append(order, sec.id)
	}
	return classes, order
}

type skillYAML struct {
	Name          string `yaml:"name"`
	Icon          string `yaml:"icon"`
	Trigger       string `yaml:"trigger"`
	CooldownTicks *int   `yaml:"cooldownTicks"`
	GCDTicks      *int   `yaml:"gcdTicks"`
	Cost          *struct {
		Type   string  `yaml:"type"`
		Amount float64 `yaml:"amount"`
	} `yaml:"cost"`
	Target *struct {
		Type  string  `yaml:"type"`
		Range float64 `yaml:"range"`
	} `yaml:"target"`
	RequiredLevel int              `yaml:"requiredLevel"`
	Handler       *string          `yaml:"handler"`
	Data          map[string]any   `yaml:"data"`
	Effects       []map[string]any `yaml:"effects"`
	Visuals       *struct {
		Particle string `yaml:"particle"`
	} `yaml:"visuals"`
}

func loadSkills(path string) map[string]*SkillDef {
	skills := map[string]*SkillDef{}

	for _, sec := range sections(path, "skills") {
		var y skillYAML
		if err := sec.node.Decode(&y); err != nil {
			log.Printf("rulebook: skipping skill %q: %v", sec.id, err)
			continue
		}

		trigger := TriggerRightClick
		if t, ok := ParseTrigger(y.Trigger); ok {
			trigger = t
		}

		cooldown := 60
		if y.CooldownTicks != nil {
			cooldown = *y.CooldownTicks
		}
		gcd := 8
		if y.GCDTicks != nil {
			gcd = *y.GCDTicks
		}

		cost := NoCost()
		if y.Cost != nil {
			cost = ResourceCost{Type: ParseResourceType(y.Cost.Type), Amount: y.Cost.Amount}
		}

		target := Target{Type: TargetSelf}
		if y.Target != nil {
			target = Target{Type: ParseTargetType(y.Target.Type), Range: y.Target.Range}
		}

		level := y.RequiredLevel
		if level < 1 {
			level = 1
		}

		handler := BuiltinHandlerID
		if y.Handler != nil {
			handler = strings.TrimSpace(*y.Handler)
		}

		effects := make([]Effect, 0, len(y.Effects))
		for _, raw := range y.Effects {
			if eff, ok := ParseEffect(raw); ok {
				effects = append(effects, eff)
			}
		}

		data := y.Data
		if data == nil {
			data = map[string]any{}
		}
		// Older skill files predate the timeline format; give them a small
		// default so new cinematic steps still fire.
		if _, ok := data["timeline"].([]any); !ok {
			data["timeline"] = defaultTimelineFor(sec.id, target.Type)
		}

		var visuals Visuals
		if y.Visuals != nil {
			visuals = Visuals{Particle: y.Visuals.Particle}
		}

		skills[sec.id] = &SkillDef{
			ID:            sec.id,
			Name:          defaultStr(y.Name, sec.id),
			Icon:          defaultStr(y.Icon, "STICK"),
			Trigger:       trigger,
			CooldownTicks: cooldown,
			GCDTicks:      gcd,
			Cost:          cost,
			Target:        target,
			RequiredLevel: level,
			HandlerID:     handler,
			Data:          data,
			Effects:       effects,
			Visuals:       visuals,
		}
	}
	return skills
}

type talentYAML struct {
	Name          string      `yaml:"name"`
	Lore          []string    `yaml:"lore"`
	Icon          string      `yaml:"icon"`
	AddStats      statMapYAML `yaml:"addStats"`
	Multipliers   statMapYAML `yaml:"multipliers"`
	MaxRank       int         `yaml:"max_rank"`
	PointsPerRank int         `yaml:"points_per_rank"`
	Resources     *struct {
		MaxManaAdd    int `yaml:"max_mana_add"`
		MaxStaminaAdd int `yaml:"max_stamina_add"`
	} `yaml:"resources"`
}

func loadTalents(path string) (map[string]*TalentDef, []string) {
	talents := map[string]*TalentDef{}
	var order []string

	for _, sec := range sections(path, "talents") {
		var y talentYAML
		if err := sec.node.Decode(&y); err != nil {
			log.Printf("rulebook: skipping talent %q: %v", sec.id, err)
			continue
		}

		def := &TalentDef{
			ID:            sec.id,
			Name:          defaultStr(y.Name, sec.id),
			Lore:          y.Lore,
			Icon:          defaultStr(y.Icon, "PAPER"),
			AddStats:      y.AddStats.toStatMap(),
			Multipliers:   y.Multipliers.toStatMap(),
			MaxRank:       maxInt(1, y.MaxRank),
			PointsPerRank: maxInt(1, y.PointsPerRank),
		}
		if y.Resources != nil {
			def.MaxPrimaryAdd = y.Resources.MaxManaAdd
			def.MaxSecondaryAdd = y.Resources.MaxStaminaAdd
		}

		talents[sec.id] = def
		order = append(order, sec.id)
	}
	return talents, order
}

type auraYAML struct {
	Type        string   `yaml:"type"`
	Particle    string   `yaml:"particle"`
	Color       string   `yaml:"color"`
	Size        *float64 `yaml:"size"`
	PeriodTicks *int     `yaml:"periodTicks"`
	BlockData   string   `yaml:"blockData"`
}

func loadAuras(path string) map[string]*AuraDef {
	auras := map[string]*AuraDef{}

	for _, sec := range sections(path, "auras") {
		var y auraYAML
		if err := sec.node.Decode(&y); err != nil {
			log.Printf("rulebook: skipping aura %q: %v", sec.id, err)
			continue
		}

		size := 1.0
		if y.Size != nil {
			size = *y.Size
		}
		period := 10
		if y.PeriodTicks != nil {
			period = *y.PeriodTicks
		}

		auras[sec.id] = &AuraDef{
			ID:          sec.id,
			Type:        defaultStr(y.Type, "AURA"),
			Particle:    defaultStr(y.Particle, "CLOUD"),
			Color:       y.Color,
			Size:        size,
			PeriodTicks: period,
			BlockData:   y.BlockData,
		}
	}
	return auras
}

// defaultTimelineFor builds the small fallback timeline injected into skills
// that predate timeline support. Skill ids are conventionally prefixed
// ("warrior_cleave" -> "warrior"), which selects a per-class palette.
func defaultTimelineFor(skillID string, targetType TargetType) []any {
	prefix := skillID
	if i := strings.Index(skillID, "_"); i >= 0 {
		prefix = skillID[:i]
	}

	particleBy := map[string]string{
		"warrior": "CRIT",
		"mage":    "FLAME",
		"rogue":   "CLOUD",
	}
	soundBy := map[string]string{
		"warrior": "ENTITY_PLAYER_ATTACK_SWEEP",
		"mage":    "ENTITY_BLAZE_SHOOT",
		"rogue":   "ENTITY_ENDERMAN_TELEPORT",
	}

	particle := "ENCHANTED_HIT"
	if p, ok := particleBy[prefix]; ok {
		particle = p
	}
	sound := "ENTITY_PLAYER_ATTACK_SWEEP"
	if s, ok := soundBy[prefix]; ok {
		sound = s
	}

	impactTarget := "CASTER"
	if targetType == TargetRay || targetType == TargetCone || targetType == TargetArea {
		impactTarget = "TARGET"
	}

	step := func(phase string, at int, kind string, extra map[string]any) any {
		m := map[string]any{"phase": phase, "at": at, "type": kind}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}

	return []any{
		step("cast", 0, "SOUND", map[string]any{"sound": sound, "volume": 0.8, "pitch": 1.2, "target": "CASTER"}),
		step("cast", 0, "SPIRAL", map[string]any{"particle": particle, "radius": 1.1, "height": 2.2, "turns": 2, "points": 56, "target": "CASTER"}),
		step("impact", 1, "RING", map[string]any{"particle": particle, "radius": 2.6, "points": 28, "y": 0.2, "target": impactTarget}),
		step("impact", 1, "BEAM", map[string]any{"particle": "END_ROD", "points": 26, "target": impactTarget}),
		step("expire", 12, "PULSE", map[string]any{"particle": particle, "startRadius": 1.0, "endRadius": 3.4, "pulses": 3, "everyTicks": 6, "points": 26, "target": impactTarget}),
	}
}

func defaultStr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

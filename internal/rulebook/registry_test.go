package rulebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LookupsReturnNilForUnknownIDs(t *testing.T) {
	r := NewRegistry()

	assert.Nil(t, r.Race("nope"))
	assert.Nil(t, r.Class("nope"))
	assert.Nil(t, r.Skill("nope"))
	assert.Nil(t, r.Talent("nope"))
	assert.Nil(t, r.Aura("nope"))
	assert.False(t, r.HasRace("nope"))
	assert.False(t, r.HasClass("nope"))
}

func TestRegistry_PutAndLookup(t *testing.T) {
	r := NewRegistry()
	r.PutRace(&RaceDef{ID: "emberkin", Name: "Emberkin"})
	r.PutClass(&ClassDef{ID: "warrior", Name: "Warrior"})
	r.PutSkill(&SkillDef{ID: "warrior_strike"})
	r.PutTalent(&TalentDef{ID: "war_might", MaxRank: 3})
	r.PutAura(&AuraDef{ID: "ember_trail", Particle: "FLAME"})

	require.NotNil(t, r.Race("emberkin"))
	assert.True(t, r.HasRace("emberkin"))
	require.NotNil(t, r.Class("warrior"))
	assert.True(t, r.HasClass("warrior"))
	require.NotNil(t, r.Skill("warrior_strike"))
	require.NotNil(t, r.Talent("war_might"))
	require.NotNil(t, r.Aura("ember_trail"))

	assert.Equal(t, 1, r.SkillCount())
	assert.Equal(t, 1, r.AuraCount())
}

func TestRegistry_ListingsPreserveInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.PutRace(&RaceDef{ID: "emberkin"})
	r.PutRace(&RaceDef{ID: "duskborn"})
	r.PutRace(&RaceDef{ID: "stoneheart"})

	ids := make([]string, 0, 3)
	for _, def := range r.Races() {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{"emberkin", "duskborn", "stoneheart"}, ids)

	// replacing an existing entry keeps its original position
	r.PutRace(&RaceDef{ID: "duskborn", Name: "Duskborn"})
	assert.Len(t, r.Races(), 3)
	assert.Equal(t, "Duskborn", r.Races()[1].Name)

	r.PutTalent(&TalentDef{ID: "b"})
	r.PutTalent(&TalentDef{ID: "a"})
	talents := r.Talents()
	require.Len(t, talents, 2)
	assert.Equal(t, "b", talents[0].ID)
	assert.Equal(t, "a", talents[1].ID)
}

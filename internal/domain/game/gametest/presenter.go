package gametest

import (
	"sync"

	"github.com/emberforge/rpgcore/internal/domain/game"
)

// ParticleCall records one SpawnParticle call
type ParticleCall struct {
	Type   string
	Pos    game.Vec3
	Count  int
	Spread float64
	Speed  float64
}

// DustCall records one SpawnDust call
type DustCall struct {
	Pos     game.Vec3
	Count   int
	R, G, B int
	Size    float64
}

// SoundCall records one PlaySound call
type SoundCall struct {
	Name   string
	Pos    game.Vec3
	Volume float64
	Pitch  float64
}

// StatusCall records one ApplyStatus call
type StatusCall struct {
	TargetID string
	Effect   game.StatusEffect
}

// MessageCall records one chat or actionbar send
type MessageCall struct {
	TargetID string
	Text     string
}

// TitleCall records one SendTitle call
type TitleCall struct {
	TargetID string
	Title    string
	Subtitle string
}

// RecordingPresenter records every presentation call for assertions.
type RecordingPresenter struct {
	mu sync.Mutex

	Particles  []ParticleCall
	Dust       []DustCall
	Sounds     []SoundCall
	Applied    []StatusCall
	Removed    []MessageCall
	Messages   []MessageCall
	ActionBars []MessageCall
	Titles     []TitleCall

	active map[string]map[string]bool
}

// NewRecordingPresenter creates an empty recorder
func NewRecordingPresenter() *RecordingPresenter {
	return &RecordingPresenter{active: map[string]map[string]bool{}}
}

// SetStatus pre-seeds an active status for HasStatus queries
func (r *RecordingPresenter) SetStatus(targetID, statusName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active[targetID] == nil {
		r.active[targetID] = map[string]bool{}
	}
	r.active[targetID][statusName] = true
}

func (r *RecordingPresenter) SpawnParticle(name string, at game.Vec3, count int, spread, speed float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Particles = append(r.Particles, ParticleCall{Type: name, Pos: at, Count: count, Spread: spread, Speed: speed})
}

func (r *RecordingPresenter) SpawnDust(at game.Vec3, count, red, green, blue int, size float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Dust = append(r.Dust, DustCall{Pos: at, Count: count, R: red, G: green, B: blue, Size: size})
}

func (r *RecordingPresenter) PlaySound(name string, at game.Vec3, volume, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sounds = append(r.Sounds, SoundCall{Name: name, Pos: at, Volume: volume, Pitch: pitch})
}

func (r *RecordingPresenter) ApplyStatus(target game.LivingEntity, effect game.StatusEffect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Applied = append(r.Applied, StatusCall{TargetID: target.ID(), Effect: effect})
	if r.active[target.ID()] == nil {
		r.active[target.ID()] = map[string]bool{}
	}
	r.active[target.ID()][effect.Name] = true
}

func (r *RecordingPresenter) RemoveStatus(target game.LivingEntity, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Removed = append(r.Removed, MessageCall{TargetID: target.ID(), Text: name})
	if m := r.active[target.ID()]; m != nil {
		delete(m, name)
	}
}

func (r *RecordingPresenter) HasStatus(target game.LivingEntity, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[target.ID()][name]
}

func (r *RecordingPresenter) SendMessage(target game.Player, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, MessageCall{TargetID: target.ID(), Text: text})
}

func (r *RecordingPresenter) SendActionBar(target game.Player, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ActionBars = append(r.ActionBars, MessageCall{TargetID: target.ID(), Text: text})
}

func (r *RecordingPresenter) SendTitle(target game.Player, title, subtitle string, fadeInTicks, stayTicks, fadeOutTicks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Titles = append(r.Titles, TitleCall{TargetID: target.ID(), Title: title, Subtitle: subtitle})
}

// StatusNames returns the currently active status names for a target
func (r *RecordingPresenter) StatusNames(targetID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for name, on := range r.active[targetID] {
		if on {
			out = append(out, name)
		}
	}
	return out
}

// Package gametest provides in-memory fakes of the game collaborator
// interfaces for unit tests.
package gametest

import (
	"math"
	"sync"

	"github.com/emberforge/rpgcore/internal/domain/game"
)

// FakeEntity is a scriptable living entity
type FakeEntity struct {
	EntID string
	Pos   game.Vec3
	Dir   game.Vec3
	Vel   game.Vec3
	HP    float64
	MaxHP float64
	Dead  bool

	// DamageTaken records every Damage call in order
	DamageTaken []DamageRecord
}

// DamageRecord is one recorded Damage call
type DamageRecord struct {
	Amount   float64
	SourceID string
}

// NewFakeEntity creates a living entity at pos with 20/20 health
func NewFakeEntity(id string, pos game.Vec3) *FakeEntity {
	return &FakeEntity{
		EntID: id,
		Pos:   pos,
		Dir:   game.Vec3{X: 0, Y: 0, Z: 1},
		HP:    20,
		MaxHP: 20,
	}
}

func (e *FakeEntity) ID() string             { return e.EntID }
func (e *FakeEntity) Position() game.Vec3    { return e.Pos }
func (e *FakeEntity) Alive() bool            { return !e.Dead }
func (e *FakeEntity) Facing() game.Vec3      { return e.Dir.Normalize() }
func (e *FakeEntity) EyePosition() game.Vec3 { return e.Pos.Add(game.Vec3{Y: 1.6}) }
func (e *FakeEntity) Health() float64        { return e.HP }
func (e *FakeEntity) MaxHealth() float64     { return e.MaxHP }
func (e *FakeEntity) Velocity() game.Vec3    { return e.Vel }

func (e *FakeEntity) SetHealth(v float64) {
	if v < 0 {
		v = 0
	}
	if v > e.MaxHP {
		v = e.MaxHP
	}
	e.HP = v
}

func (e *FakeEntity) Damage(amount float64, source game.Entity) {
	sourceID := ""
	if source != nil {
		sourceID = source.ID()
	}
	e.DamageTaken = append(e.DamageTaken, DamageRecord{Amount: amount, SourceID: sourceID})
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		e.Dead = true
	}
}

func (e *FakeEntity) SetVelocity(v game.Vec3) { e.Vel = v }

// FakePlayer is a scriptable connected player
type FakePlayer struct {
	FakeEntity
	PlayerName  string
	Online      bool
	Slot        int
	IsSprinting bool
}

// NewFakePlayer creates a connected player at the origin
func NewFakePlayer(id, name string) *FakePlayer {
	return &FakePlayer{
		FakeEntity: *NewFakeEntity(id, game.Vec3{}),
		PlayerName: name,
		Online:     true,
	}
}

func (p *FakePlayer) Name() string    { return p.PlayerName }
func (p *FakePlayer) Connected() bool { return p.Online && !p.Dead }
func (p *FakePlayer) HeldSlot() int   { return p.Slot }
func (p *FakePlayer) Sprinting() bool { return p.IsSprinting }

// FakeWorld holds fake players and entities and answers spatial queries with
// simple exact math.
type FakeWorld struct {
	mu       sync.RWMutex
	players  map[string]*FakePlayer
	entities []game.LivingEntity
}

// NewFakeWorld creates an empty world
func NewFakeWorld() *FakeWorld {
	return &FakeWorld{players: map[string]*FakePlayer{}}
}

// AddPlayer registers a player (also visible to entity queries)
func (w *FakeWorld) AddPlayer(p *FakePlayer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[p.EntID] = p
	w.entities = append(w.entities, p)
}

// AddEntity registers a non-player living entity
func (w *FakeWorld) AddEntity(e game.LivingEntity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = append(w.entities, e)
}

func (w *FakeWorld) Player(id string) game.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	if !ok || !p.Connected() {
		return nil
	}
	return p
}

func (w *FakeWorld) Players() []game.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]game.Player, 0, len(w.players))
	for _, p := range w.players {
		if p.Connected() {
			out = append(out, p)
		}
	}
	return out
}

// Rough humanoid bounding box anchored at the entity's feet position
const (
	bodyHalfWidth = 0.4
	bodyHeight    = 1.8
)

// RayTraceLiving returns the nearest living entity whose bounding box the ray
// enters within maxDist. Boxes span from the feet position to bodyHeight, so
// eye-height rays connect with entities standing on the same ground level.
func (w *FakeWorld) RayTraceLiving(origin, dir game.Vec3, maxDist float64, exclude game.Entity) game.LivingEntity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	unit := dir.Normalize()

	var best game.LivingEntity
	bestDist := maxDist + 1
	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		if exclude != nil && e.ID() == exclude.ID() {
			continue
		}
		pos := e.Position()
		boxMin := game.Vec3{X: pos.X - bodyHalfWidth, Y: pos.Y, Z: pos.Z - bodyHalfWidth}
		boxMax := game.Vec3{X: pos.X + bodyHalfWidth, Y: pos.Y + bodyHeight, Z: pos.Z + bodyHalfWidth}
		dist, hit := rayBoxEntry(origin, unit, boxMin, boxMax)
		if !hit || dist > maxDist {
			continue
		}
		if dist < bestDist {
			bestDist = dist
			best = e
		}
	}
	return best
}

// rayBoxEntry runs the slab test and returns the entry distance along the
// ray, zero when the origin is inside the box.
func rayBoxEntry(origin, unit, boxMin, boxMax game.Vec3) (float64, bool) {
	tMin, tMax := 0.0, math.MaxFloat64
	for _, axis := range [3][3]float64{
		{unit.X, boxMin.X - origin.X, boxMax.X - origin.X},
		{unit.Y, boxMin.Y - origin.Y, boxMax.Y - origin.Y},
		{unit.Z, boxMin.Z - origin.Z, boxMax.Z - origin.Z},
	} {
		d, lo, hi := axis[0], axis[1], axis[2]
		if d == 0 {
			if lo > 0 || hi < 0 {
				return 0, false
			}
			continue
		}
		t1, t2 := lo/d, hi/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func (w *FakeWorld) NearbyLiving(center game.Vec3, radius float64) []game.LivingEntity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []game.LivingEntity
	for _, e := range w.entities {
		if !e.Alive() {
			continue
		}
		d := e.Position().Sub(center)
		if abs(d.X) <= radius && abs(d.Y) <= radius && abs(d.Z) <= radius {
			out = append(out, e)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

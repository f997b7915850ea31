package game

// StatusEffect is a timed status applied to a living entity. Name is a
// modern status name; legacy aliases are resolved at config load time.
type StatusEffect struct {
	Name          string
	DurationTicks int
	Amplifier     int
	Ambient       bool
	ShowParticles bool
	ShowIcon      bool
}

// Presenter is the cosmetic/status output surface of the host. Every call is
// best effort: implementations must swallow their own failures, and the core
// never depends on a presenter call having worked.
type Presenter interface {
	SpawnParticle(name string, at Vec3, count int, spread, speed float64)

	// SpawnDust renders colored dust; r, g and b are 0..255 components.
	SpawnDust(at Vec3, count, r, g, b int, size float64)

	PlaySound(name string, at Vec3, volume, pitch float64)

	ApplyStatus(target LivingEntity, effect StatusEffect)

	RemoveStatus(target LivingEntity, name string)

	HasStatus(target LivingEntity, name string) bool

	SendMessage(p Player, text string)

	SendActionBar(p Player, text string)

	SendTitle(p Player, title, subtitle string, fadeInTicks, stayTicks, fadeOutTicks int)
}

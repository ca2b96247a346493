package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/events"
)

// Engine wires the store, physics, spawner, state machine, event bus and
// timers together and is the only entry point for the outside world.
// It is not safe for concurrent use.
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	assets AssetProvider
	seed   int64

	store   *Store
	bus     *events.Bus[EventKind, Event]
	timers  *Timers
	physics *Physics
	spawner *Spawner
	machine *Machine

	clock float64
	ticks uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAssets sets the asset provider.
func WithAssets(p AssetProvider) Option {
	return func(e *Engine) {
		if p != nil {
			e.assets = p
		}
	}
}

// WithSeed sets the spawner RNG seed. Equal seeds and inputs replay identically.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// NewEngine validates cfg and builds an Idle engine.
func NewEngine(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	e := &Engine{
		cfg:    cfg.Clone(),
		logger: log.New(io.Discard),
		assets: kindAssets{},
		seed:   1,
		store:  NewStore(),
		timers: &Timers{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.bus = events.NewBus(eventKindOf)
	e.bus.SetPanicHandler(e.recovered("event subscriber"))
	e.physics = NewPhysics(e.cfg, e.emit, e.logger)
	e.spawner = NewSpawner(e.cfg, e.seed, e.logger)
	e.machine = NewMachine(e.cfg, e.emit, e.after, e.logger)
	e.machine.SetPanicHandler(e.recovered("state subscriber"))

	// Internal handlers are registered first on every kind, so external
	// subscribers always observe the state after the event was applied.
	for _, kind := range EventKinds() {
		e.bus.Subscribe(kind, e.machine.HandleEvent)
	}
	e.bus.Subscribe(EventLevelUp, e.onLevelUp)

	return e, nil
}

func (e *Engine) recovered(who string) events.PanicHandler {
	return func(r any) {
		e.logger.Error("recovered panic", "in", who, "panic", r)
	}
}

// emit stamps ev with the current generation and level and queues it.
func (e *Engine) emit(ev Event) {
	st := e.machine.State()
	ev.Generation = st.Generation
	ev.Level = st.Level
	e.bus.Enqueue(ev)
}

// after schedules fn on the engine clock under the current generation.
func (e *Engine) after(delayMS float64, name string, fn func()) {
	e.timers.Schedule(e.clock+delayMS, e.machine.Generation(), name, fn)
}

// Update advances the simulation by one frame.
// Nothing escapes it: a panic is recovered and logged.
func (e *Engine) Update(deltaMS float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("update recovered", "panic", r, "tick", e.ticks)
		}
	}()

	d := e.physics.ClampDelta(deltaMS)
	e.clock += d
	e.ticks++

	st := e.machine.State()
	if st.Status == StatusPlaying && e.store.Player() != nil {
		res := e.physics.Step(e.store, d, st.DebugMode)
		e.release(res.Removed)

		if lvl, ok := e.cfg.Level(st.Level); ok && !res.Died {
			plan := e.spawner.Step(e.store, st.Level, lvl, st.ElapsedTime)
			for _, ob := range plan.Obstacles {
				e.adopt(ob, EventObstacleSpawned)
			}
			if plan.Orb {
				e.scheduleOrb(plan.OrbDelayMS, st.Level)
			}
		}
	}

	e.bus.Flush()
	e.machine.Tick(d)
	e.timers.Advance(e.clock, e.machine.Generation())
	e.bus.Flush()
	e.machine.Commit()
}

func (e *Engine) scheduleOrb(delayMS float64, level int) {
	e.after(delayMS, "orb-spawn", func() {
		st := e.machine.State()
		if st.Status != StatusPlaying || st.Level != level {
			return
		}
		lvl, ok := e.cfg.Level(level)
		if !ok {
			return
		}
		e.adopt(e.spawner.PlaceOrb(e.store, lvl), EventOrbSpawned)
	})
}

// adopt resolves a visual for ent and stores it. A non-negative announce kind is
// emitted once the entity is stored.
func (e *Engine) adopt(ent *Entity, announce EventKind) {
	handle, err := e.assets.Acquire(ent.Kind)
	if err != nil {
		e.logger.Warn("asset unavailable, using placeholder", "kind", ent.Kind, "err", err)
		handle = PlaceholderAsset
	}
	ent.Visual = handle
	if _, err := e.store.Add(ent); err != nil {
		e.logger.Warn("entity rejected", "kind", ent.Kind, "err", err)
		e.releaseOne(ent)
		return
	}
	if announce >= 0 {
		e.emit(Event{Kind: announce, EntityID: ent.ID, EntityKind: ent.Kind, X: ent.X, Y: ent.Y})
	}
}

// noAnnounce tells adopt to store an entity silently.
const noAnnounce EventKind = -1

func (e *Engine) release(removed []*Entity) {
	for _, ent := range removed {
		e.releaseOne(ent)
	}
}

func (e *Engine) releaseOne(ent *Entity) {
	if ent.Visual != "" && ent.Visual != PlaceholderAsset {
		e.assets.Release(ent.Visual)
	}
	ent.Visual = ""
}

// onLevelUp clears the field for the next level. The player stays but stops.
func (e *Engine) onLevelUp(ev Event) {
	if ev.Generation != e.machine.Generation() {
		return
	}
	e.release(e.store.Clear())
	e.spawner.Reset(e.machine.State().ElapsedTime)
	if p := e.store.Player(); p != nil {
		p.VX, p.VY, p.Rotation = 0, 0, 0
	}
}

func (e *Engine) teardown() {
	e.release(e.store.ClearAll())
	e.physics.Forget()
	e.bus.Discard()
}

func (e *Engine) spawnPlayer() {
	pc := e.cfg.Player
	e.adopt(&Entity{
		Kind:   KindPlayer,
		X:      pc.StartX,
		Y:      pc.StartY,
		Width:  pc.Width,
		Height: pc.Height,
		Alive:  true,
	}, noAnnounce)
}

// settle dispatches events raised by a command and publishes state changes.
func (e *Engine) settle() {
	e.bus.Flush()
	e.machine.Commit()
}

// Start begins a new round from Idle or GameOver. Returns false if a round is running.
func (e *Engine) Start() bool {
	if !e.machine.CanStart() {
		return false
	}
	e.teardown()
	e.machine.Start()
	e.spawner.Reset(0)
	e.spawnPlayer()
	e.settle()
	return true
}

// Reset abandons the round and returns to Idle.
func (e *Engine) Reset() {
	e.teardown()
	e.machine.Reset()
	e.spawner.Reset(0)
	e.settle()
}

// ToggleDebug flips debug mode and returns the new value.
func (e *Engine) ToggleDebug() bool {
	on := e.machine.ToggleDebug()
	e.logger.Info("debug mode", "enabled", on)
	e.settle()
	return on
}

// controllable returns the player if it can take commands.
func (e *Engine) controllable() *Entity {
	if e.machine.State().Status != StatusPlaying {
		return nil
	}
	p := e.store.Player()
	if p == nil || !p.Alive {
		return nil
	}
	return p
}

// Flap sets the player's vertical velocity to the flap impulse.
func (e *Engine) Flap() {
	p := e.controllable()
	if p == nil {
		return
	}
	maxV := e.cfg.Physics.MaxVelocity
	p.VY = max(-maxV, min(maxV, e.cfg.Physics.FlapImpulse))
	e.emit(Event{Kind: EventJump, EntityID: p.ID, EntityKind: p.Kind, X: p.X, Y: p.Y})
	e.settle()
}

// MoveLeft starts a leftward drift.
func (e *Engine) MoveLeft() {
	if p := e.controllable(); p != nil {
		p.VX = -e.cfg.Player.HorizontalSpeed
	}
}

// MoveRight starts a rightward drift.
func (e *Engine) MoveRight() {
	if p := e.controllable(); p != nil {
		p.VX = e.cfg.Player.HorizontalSpeed
	}
}

// MoveUp nudges the player upward.
func (e *Engine) MoveUp() {
	e.nudge(-e.cfg.Physics.NudgeImpulse)
}

// MoveDown nudges the player downward.
func (e *Engine) MoveDown() {
	e.nudge(e.cfg.Physics.NudgeImpulse)
}

func (e *Engine) nudge(dv float64) {
	p := e.controllable()
	if p == nil {
		return
	}
	maxV := e.cfg.Physics.MaxVelocity
	p.VY = max(-maxV, min(maxV, p.VY+dv))
}

// State returns a snapshot of the game state.
func (e *Engine) State() GameState {
	return e.machine.State()
}

// OnStateChanged registers fn for every committed state mutation.
func (e *Engine) OnStateChanged(fn func(StateChange)) events.Unsubscribe {
	return e.machine.OnStateChanged(fn)
}

// OnFieldChanged registers fn for commits touching any of fields.
func (e *Engine) OnFieldChanged(fields StateField, fn func(StateChange)) events.Unsubscribe {
	return e.machine.OnFieldChanged(fields, fn)
}

// OnSemanticEvent registers fn for events of kind.
func (e *Engine) OnSemanticEvent(kind EventKind, fn func(Event)) events.Unsubscribe {
	return e.bus.Subscribe(kind, fn)
}

// Entities returns copies of the live entities in insertion order.
func (e *Engine) Entities() []Entity {
	all := e.store.All()
	out := make([]Entity, len(all))
	for i, ent := range all {
		out[i] = *ent
	}
	return out
}

// Player returns a copy of the player, if one exists.
func (e *Engine) Player() (Entity, bool) {
	if p := e.store.Player(); p != nil {
		return *p, true
	}
	return Entity{}, false
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.Config {
	return e.cfg.Clone()
}

// Stats is a diagnostic snapshot.
type Stats struct {
	Clock         time.Duration
	Ticks         uint64
	Entities      int
	PendingTimers int
	FiredTimers   int
	StaleTimers   int
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Clock:         time.Duration(e.clock * float64(time.Millisecond)),
		Ticks:         e.ticks,
		Entities:      e.store.Len(),
		PendingTimers: e.timers.Len(),
		FiredTimers:   e.timers.Fired(),
		StaleTimers:   e.timers.Stale(),
	}
}

package obj

import (
	"image"
	"math"
	"testing"

	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/render"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCraft(t *testing.T, x, y float64, w, h int, cfg CraftConfig) (*Craft, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder(w, h)
	c, err := NewCraftWithConfig(x, y, image.NewRGBA(image.Rect(0, 0, 5, 5)), rec, cfg)
	require.NoError(t, err)
	return c, rec
}

func TestNewCraftDefaults(t *testing.T) {
	c, err := NewCraft(3, 4, nil, render.NewRecorder(100, 100))
	require.NoError(t, err)

	assert.Equal(t, common.Vec(3, 4), c.Position())
	assert.Equal(t, common.Vec(25, 25), c.Size())
	assert.Equal(t, 5.0, c.Mass())
	assert.Equal(t, common.Vector2{}, c.Velocity())
	assert.Equal(t, common.Vector2{}, c.Acceleration())
	assert.Equal(t, common.Vector2{}, c.Force())
	assert.Empty(t, c.Projectiles())
}

func TestNewCraftErrors(t *testing.T) {
	cases := []struct {
		name    string
		surface render.Surface
		mass    float64
		want    error
	}{
		{"no_context", render.NewRecorder(0, 0), 5, render.ErrNoContext},
		{"nil_surface", nil, 5, render.ErrNoContext},
		{"zero_mass", render.NewRecorder(10, 10), 0, ErrInvalidMass},
		{"negative_mass", render.NewRecorder(10, 10), -1, ErrInvalidMass},
		{"nan_mass", render.NewRecorder(10, 10), math.NaN(), ErrInvalidMass},
		{"inf_mass", render.NewRecorder(10, 10), math.Inf(1), ErrInvalidMass},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultCraftConfig()
			cfg.Mass = c.mass
			craft, err := NewCraftWithConfig(0, 0, nil, c.surface, cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
			assert.Nil(t, craft)
		})
	}
}

func TestCraftIntegrationOrder(t *testing.T) {
	c, _ := newTestCraft(t, 0, 0, 640, 480, DefaultCraftConfig())

	c.AddForce(common.Vec(10, 0))
	c.Update()

	assert.Equal(t, common.Vec(2, 0), c.Acceleration())
	assert.Equal(t, common.Vec(2, 0), c.Velocity())
	assert.Equal(t, common.Vec(0, 0), c.Position())
	assert.Equal(t, common.Vec(5, 0), c.Force())

	c.Update()
	assert.Equal(t, common.Vec(2, 0), c.Position())
	assert.Equal(t, common.Vec(1, 0), c.Acceleration())
	assert.Equal(t, common.Vec(3, 0), c.Velocity())
	assert.Equal(t, common.Vec(2.5, 0), c.Force())
}

func TestCraftDragDecay(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		c, _ := newTestCraft(t, 5000, 5000, 10000, 10000, DefaultCraftConfig())
		f := common.Vec(8, -4)
		c.AddForce(f)
		for i := 0; i < n; i++ {
			c.Update()
		}
		div := math.Pow(2, float64(n))
		assert.InDelta(t, f.X/div, c.Force().X, 1e-12, "n=%d", n)
		assert.InDelta(t, f.Y/div, c.Force().Y, 1e-12, "n=%d", n)
	}
}

func TestCraftBoundaryClampResetsKinematics(t *testing.T) {
	cases := []struct {
		name  string
		start common.Vector2
		force common.Vector2
		want  common.Vector2
	}{
		{"right_wall", common.Vec(614, 100), common.Vec(100, 0), common.Vec(615, 100)},
		{"left_wall", common.Vec(1, 100), common.Vec(-100, 0), common.Vec(0, 100)},
		{"floor", common.Vec(100, 454), common.Vec(0, 100), common.Vec(100, 455)},
		{"ceiling", common.Vec(100, 1), common.Vec(0, -100), common.Vec(100, 0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCraft(t, tc.start.X, tc.start.Y, 640, 480, DefaultCraftConfig())
			c.AddForce(tc.force)

			c.Update()
			require.Equal(t, tc.start, c.Position(), "first update moves with zero velocity")
			require.NotEqual(t, common.Vector2{}, c.Velocity())

			c.Update()
			assert.Equal(t, tc.want, c.Position())
			assert.Equal(t, common.Vector2{}, c.Velocity())
			assert.Equal(t, common.Vector2{}, c.Force())
			assert.Equal(t, common.Vector2{}, c.Acceleration())
		})
	}
}

func TestCraftStaysInField(t *testing.T) {
	c, _ := newTestCraft(t, 300, 200, 640, 480, DefaultCraftConfig())
	pushes := []common.Vector2{
		common.Vec(50, 0), common.Vec(0, 80), common.Vec(-200, -30), common.Vec(0, -500), common.Vec(400, 400),
	}
	for i := 0; i < 200; i++ {
		c.AddForce(pushes[i%len(pushes)])
		c.Update()
		p := c.Position()
		require.GreaterOrEqual(t, p.X, 0.0)
		require.GreaterOrEqual(t, p.Y, 0.0)
		require.LessOrEqual(t, p.X, 640.0-25)
		require.LessOrEqual(t, p.Y, 480.0-25)
	}
}

func TestCraftSpawnPosition(t *testing.T) {
	c, _ := newTestCraft(t, 100, 300, 640, 480, DefaultCraftConfig())
	forces := []common.Vector2{common.Vec(10, -20), {}, common.Vec(-3, 0), common.Vec(0, 900), {}}

	for _, f := range forces {
		c.AddForce(f)
		c.Update()

		ps := c.Projectiles()
		require.NotEmpty(t, ps)
		latest := ps[len(ps)-1]
		want := common.Vec(c.Position().X+c.Size().X/2, c.Position().Y)
		assert.Equal(t, want, latest.Position())
	}
}

func TestCraftProjectileGrowthAndMotion(t *testing.T) {
	c, _ := newTestCraft(t, 100, 300, 640, 480, DefaultCraftConfig())

	for n := 1; n <= 50; n++ {
		c.Update()
		require.Len(t, c.Projectiles(), n)
		require.Equal(t, n, c.ProjectileCount())
	}

	first := c.Projectiles()[0]
	before := first.Position()
	c.Update()
	after := first.Position()
	assert.Equal(t, before.X, after.X)
	assert.Equal(t, before.Y-1, after.Y)
}

func TestCraftRenderOrderAndIdempotence(t *testing.T) {
	c, rec := newTestCraft(t, 10, 20, 640, 480, DefaultCraftConfig())
	for i := 0; i < 3; i++ {
		c.Update()
	}

	rec.Reset()
	c.Render()
	first := rec.Calls()

	rec.Reset()
	c.Render()
	c.Render()
	twice := rec.Calls()

	require.Len(t, first, 4)
	assert.Equal(t, render.OpDrawImage, first[0].Op)
	assert.Equal(t, [4]float64{10, 20, 25, 25}, [4]float64{first[0].X, first[0].Y, first[0].W, first[0].H})
	for _, call := range first[1:] {
		assert.Equal(t, render.OpFillRect, call.Op)
	}
	assert.Equal(t, first, twice[:len(first)])
	assert.Equal(t, first, twice[len(first):])
}

func TestCraftRenderWithoutSprite(t *testing.T) {
	rec := render.NewRecorder(100, 100)
	c, err := NewCraft(0, 0, nil, rec)
	require.NoError(t, err)
	c.Update()
	c.Render()

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, render.OpFillRect, calls[0].Op)
}

func TestCraftDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultCraftConfig()
	cfg.Diagnostics = zap.New(core)
	c, _ := newTestCraft(t, 0, 0, 640, 480, cfg)

	c.AddForce(common.Vec(10, 0))
	c.Update()

	entries := logs.FilterMessage("craft update").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "(0, 0)", fields["position"])
	assert.Equal(t, "(2, 0)", fields["velocity"])
	assert.Equal(t, "(2, 0)", fields["acceleration"])
	assert.Equal(t, int64(1), fields["frame"])

	assert.Equal(t, "craft: [position=(0, 0), velocity=(2, 0), acceleration=(2, 0)]", c.Telemetry())
}

func TestCraftTriggerFire(t *testing.T) {
	cfg := DefaultCraftConfig()
	cfg.FireMode = FireTrigger
	cfg.CooldownFrames = 2
	c, _ := newTestCraft(t, 100, 300, 640, 480, cfg)

	c.Update()
	require.Empty(t, c.Projectiles(), "no shot without a trigger")

	steps := []struct {
		fire bool
		want int
	}{
		{true, 1},  // fires, cooldown 2
		{true, 1},  // cooling
		{true, 1},  // cooling
		{true, 2},  // fires again
		{false, 2}, // cooling
		{false, 2}, // cooling
		{false, 2}, // ready but not firing
		{true, 3},
	}
	for i, s := range steps {
		if s.fire {
			c.Fire()
		}
		c.Update()
		require.Len(t, c.Projectiles(), s.want, "step %d", i)
	}
}

func TestCraftMaxProjectilesEvictsOldest(t *testing.T) {
	cfg := DefaultCraftConfig()
	cfg.MaxProjectiles = 3
	c, _ := newTestCraft(t, 100, 300, 640, 480, cfg)

	for i := 0; i < 10; i++ {
		c.Update()
	}
	ps := c.Projectiles()
	require.Len(t, ps, 3)
	// oldest survivor spawned two frames before the newest
	assert.Equal(t, ps[2].Position().Y-2, ps[0].Position().Y)
}

func TestCraftCullsExpiredProjectiles(t *testing.T) {
	cfg := DefaultCraftConfig()
	cfg.CullProjectiles = true
	cfg.ProjectileLifeFrames = 4
	c, _ := newTestCraft(t, 100, 300, 640, 480, cfg)

	for i := 0; i < 20; i++ {
		c.Update()
		require.LessOrEqual(t, len(c.Projectiles()), 4)
	}
	assert.Len(t, c.Projectiles(), 4)

	cfg.ProjectileLifeFrames = 0
	top, _ := newTestCraft(t, 100, 2, 640, 480, cfg)
	for i := 0; i < 10; i++ {
		top.Update()
	}
	// spawned at y=2, gone once y+3 < 0
	assert.Len(t, top.Projectiles(), 6)
}

type fakeSound struct {
	playing bool
	plays   int
	pauses  int
	rewinds int
}

func (s *fakeSound) Play()           { s.playing = true; s.plays++ }
func (s *fakeSound) Pause()          { s.playing = false; s.pauses++ }
func (s *fakeSound) Rewind() error   { s.rewinds++; return nil }
func (s *fakeSound) IsPlaying() bool { return s.playing }

func TestCraftEngineSound(t *testing.T) {
	snd := &fakeSound{}
	cfg := DefaultCraftConfig()
	cfg.EngineSound = snd
	cfg.EngineSoundSpeed = 1
	c, _ := newTestCraft(t, 300, 200, 640, 480, cfg)

	c.AddForce(common.Vec(20, 0)) // a = 4
	c.Update()
	assert.True(t, snd.playing)
	assert.Equal(t, 1, snd.plays)

	c.Update()
	assert.Equal(t, 1, snd.plays, "already playing")

	c.AddForce(common.Vec(-35, 0)) // v: 6 + (5-35)/5 = 0
	c.Update()
	assert.False(t, snd.playing)
	assert.Equal(t, 1, snd.pauses)
	assert.Equal(t, 1, snd.rewinds)
}

func TestCraftEngineSoundInertByDefault(t *testing.T) {
	snd := &fakeSound{}
	cfg := DefaultCraftConfig()
	cfg.EngineSound = snd
	c, _ := newTestCraft(t, 300, 200, 640, 480, cfg)

	c.AddForce(common.Vec(500, 0))
	for i := 0; i < 5; i++ {
		c.Update()
	}
	assert.Zero(t, snd.plays)
	assert.Zero(t, snd.pauses)
}

func TestCraftState(t *testing.T) {
	c, _ := newTestCraft(t, 10, 20, 640, 480, DefaultCraftConfig())
	c.AddForce(common.Vec(5, 5))
	c.Update()

	s := c.State()
	assert.Equal(t, 1, s.Frame)
	assert.Equal(t, c.Position(), s.Position)
	assert.Equal(t, c.Velocity(), s.Velocity)
	assert.Equal(t, c.Acceleration(), s.Acceleration)
	assert.Equal(t, common.Vec(25, 25), s.Size)
	assert.Equal(t, common.Vec(640, 480), s.Field)
}

package obj

import (
	"testing"

	"github.com/milk9111/thruster/common"
	"github.com/stretchr/testify/assert"
)

func TestInputForce(t *testing.T) {
	cases := []struct {
		name   string
		tx, ty float64
		want   common.Vector2
	}{
		{"idle", 0, 0, common.Vec(0, 0)},
		{"right", 1, 0, common.Vec(4, 0)},
		{"up_left", -1, -1, common.Vec(-4, -4)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := NewInput(4)
			in.ThrustX = c.tx
			in.ThrustY = c.ty
			assert.Equal(t, c.want, in.Force(State{}))
		})
	}
}

func TestInputFiring(t *testing.T) {
	in := NewInput(1)
	assert.False(t, in.Firing())
	in.FireHeld = true
	assert.True(t, in.Firing())
}

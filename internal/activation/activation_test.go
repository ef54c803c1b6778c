package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineSequence(t *testing.T) {
	var m Machine
	require.Equal(t, None, m.Selection())
	require.True(t, m.ControlsEnabled())

	type event struct {
		name string
		run  func()
		want Selection
	}
	events := []event{
		{"activate 1", func() { m.Activate(1) }, Active(1)},
		{"activate 2", func() { m.Activate(2) }, Active(2)},
		{"close", func() { m.Close() }, None},
		{"activate 3", func() { m.Activate(3) }, Active(3)},
	}
	for _, ev := range events {
		ev.run()
		sel := m.Selection()
		assert.Equal(t, ev.want, sel, ev.name)

		active := 0
		for id := 0; id < 5; id++ {
			if sel.Is(id) {
				active++
			}
		}
		assert.LessOrEqual(t, active, 1, ev.name)
		assert.Equal(t, !sel.Valid, m.ControlsEnabled(), ev.name)
	}
}

func TestActivateIsConsumed(t *testing.T) {
	var m Machine
	assert.True(t, m.Activate(4))
	assert.True(t, m.Activate(4))
	assert.Equal(t, Active(4), m.Selection())
}

func TestOnChange(t *testing.T) {
	var m Machine
	var got [][2]Selection
	m.OnChange(func(prev, next Selection) {
		got = append(got, [2]Selection{prev, next})
	})

	m.Activate(0)
	m.Activate(0) // no change
	m.Activate(5)
	m.Close()
	m.Close() // already idle

	assert.Equal(t, [][2]Selection{
		{None, Active(0)},
		{Active(0), Active(5)},
		{Active(5), None},
	}, got)
}

func TestSelectionIs(t *testing.T) {
	assert.False(t, None.Is(0))
	assert.True(t, Active(0).Is(0))
	assert.False(t, Active(0).Is(1))
	assert.Equal(t, "idle", None.LogValue().String())
}

package face

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweeney/points-face/internal/counter"
)

func TestFormatBottom(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, " 0 =00"},
		{7, " 7 =35"},
		{11, " 11 =55"},
		{12, " 12=100"},
		{13, " 13=105"},
		{99, " 99=815"},
		{-1, "-1 =05"},
		{-9, "-9 =45"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBottom(tt.value), "FormatBottom(%d)", tt.value)
	}
}

func TestFormatBottomClampsOutOfRange(t *testing.T) {
	assert.Equal(t, FormatBottom(counter.Max), FormatBottom(150))
	assert.Equal(t, FormatBottom(counter.Min), FormatBottom(-40))
}

func TestPageLabel(t *testing.T) {
	name, fallback := PageLabel(0)
	assert.Equal(t, "OSMO", name)
	assert.Equal(t, "OS", fallback)

	name, fallback = PageLabel(1)
	assert.Equal(t, "FEMO", name)
	assert.Equal(t, "FE", fallback)
}

func TestRenderPageZero(t *testing.T) {
	d := &FakeDisplay{}
	st := &counter.State{Values: [counter.PageCount]int{12, 0}}

	Render(d, st, true)

	assert.Equal(t, "OSMO", d.Top)
	assert.Equal(t, "OS", d.TopFallback)
	assert.Equal(t, " 12=100", d.Bottom)
	assert.True(t, d.Bell)
}

func TestRenderPageOneClearsBell(t *testing.T) {
	d := &FakeDisplay{Bell: true}
	st := &counter.State{Page: 1, Values: [counter.PageCount]int{12, 7}}

	Render(d, st, false)

	assert.Equal(t, "FEMO", d.Top)
	assert.Equal(t, "FE", d.TopFallback)
	assert.Equal(t, " 7 =35", d.Bottom)
	assert.False(t, d.Bell)
}

func TestRenderIsIdempotent(t *testing.T) {
	st := &counter.State{Values: [counter.PageCount]int{-3, 40}}
	a, b := &FakeDisplay{}, &FakeDisplay{}

	Render(a, st, true)
	Render(b, st, true)
	Render(b, st, true)

	assert.Equal(t, a.Top, b.Top)
	assert.Equal(t, a.Bottom, b.Bottom)
	assert.Equal(t, a.Bell, b.Bell)
}

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adibhanna/coachlix/internal/plan"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		isIndex bool
		segment string
	}{
		{"0", true, "index/0"},
		{"12", true, "index/12"},
		{"-1", false, "-1"},
		{"64f0a1b2c3", false, "64f0a1b2c3"},
		{"a b", false, "a%20b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref := plan.ParseRef(tt.in)
			assert.Equal(t, tt.isIndex, ref.IsIndex())
			assert.Equal(t, tt.segment, ref.PathSegment())
		})
	}
}

func TestRefFor(t *testing.T) {
	assert.Equal(t, "index/3", plan.RefFor("", 3).PathSegment())
	assert.Equal(t, "abc", plan.RefFor("abc", 3).PathSegment())
	assert.Equal(t, "5", plan.RefFor("5", 3).PathSegment())

	ref := plan.RefFor("7", 0)
	assert.False(t, ref.IsIndex())
	id, ok := ref.ID()
	assert.True(t, ok)
	assert.Equal(t, "7", id)
}

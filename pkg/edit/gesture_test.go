package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGesture_String(t *testing.T) {
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "open-below", OpenBelow.String())
	assert.Equal(t, "open-above", OpenAbove.String())
	assert.Equal(t, "indent", Indent.String())
	assert.Equal(t, "outdent", Outdent.String())
	assert.Equal(t, "unknown", Gesture(99).String())
}

func TestParseGesture(t *testing.T) {
	tests := []struct {
		in     string
		want   Gesture
		wantOK bool
	}{
		{in: "confirm", want: Confirm, wantOK: true},
		{in: "open-below", want: OpenBelow, wantOK: true},
		{in: "open_below", want: OpenBelow, wantOK: true},
		{in: "OPEN-ABOVE", want: OpenAbove, wantOK: true},
		{in: "indent", want: Indent, wantOK: true},
		{in: "outdent", want: Outdent, wantOK: true},
		{in: "bogus", want: Confirm, wantOK: false},
		{in: "", want: Confirm, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := ParseGesture(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ParseGesture(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "ParseGesture(%q)", tt.in)
	}
}

func TestGestureNames_RoundTrip(t *testing.T) {
	for _, name := range GestureNames() {
		g, ok := ParseGesture(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, g.String())
	}
}

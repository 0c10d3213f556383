package lsp

import (
	"testing"

	"github.com/SeanMcLoughlin/very-sub000/internal/source"
)

func TestOffsetForPositionInText(t *testing.T) {
	text := source.NewTextString("module m;\nlogic x;\nendmodule\n")
	tests := []struct {
		name string
		pos  position
		want uint32
	}{
		{"start", position{Line: 0, Character: 0}, 0},
		{"mid first line", position{Line: 0, Character: 7}, 7},
		{"second line", position{Line: 1, Character: 6}, 16},
		{"past line end clamps to newline", position{Line: 0, Character: 99}, 9},
		{"past last line clamps to len", position{Line: 42, Character: 0}, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offsetForPositionInText(text, tt.pos); got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPositionOffsetRoundTripUTF16(t *testing.T) {
	// The emoji occupies 4 bytes but 2 UTF-16 code units.
	text := source.NewTextString("ab\U0001F600cd\nnext")
	tests := []struct {
		offset uint32
		want   position
	}{
		{0, position{Line: 0, Character: 0}},
		{2, position{Line: 0, Character: 2}},
		{6, position{Line: 0, Character: 4}},
		{7, position{Line: 0, Character: 5}},
		{9, position{Line: 1, Character: 0}},
		{11, position{Line: 1, Character: 2}},
	}
	for _, tt := range tests {
		got := positionForOffsetInText(text, tt.offset)
		if got != tt.want {
			t.Errorf("position(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
		back := offsetForPositionInText(text, tt.want)
		if back != tt.offset {
			t.Errorf("offset(%+v) = %d, want %d", tt.want, back, tt.offset)
		}
	}
}

func TestRangeForSpan(t *testing.T) {
	text := source.NewTextString("module m;\nendmodule\n")
	got := rangeForSpan(text, source.Span{Start: 7, End: 18})
	want := lspRange{
		Start: position{Line: 0, Character: 7},
		End:   position{Line: 1, Character: 8},
	}
	if got != want {
		t.Errorf("range = %+v, want %+v", got, want)
	}
}

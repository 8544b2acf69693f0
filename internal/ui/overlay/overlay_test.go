package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlace_Center(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX\nXX"

	result := Place(Config{Width: 5, Height: 3, Position: Center}, fg, bg)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "XX")
}

func TestPlace_PreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"
	fg := "X"

	result := Place(Config{Width: 5, Height: 3, Position: Center}, fg, bg)

	lines := strings.Split(result, "\n")
	require.Equal(t, "FGXIJ", lines[1])
}

func TestPlace_OversizedForegroundDoesNotPanic(t *testing.T) {
	bg := "AAA\nAAA\nAAA"
	fg := "XXXXX\nXXXXX"

	result := Place(Config{Width: 3, Height: 3, Position: Center}, fg, bg)

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "XXXXX") || strings.HasPrefix(lines[1], "XXXXX"))
}

func TestPlace_TopAndBottomWithPadding(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat("AAAAA\n", 5), "\n")
	fg := "XX"

	top := strings.Split(Place(Config{Width: 5, Height: 5, Position: Top, PadY: 1}, fg, bg), "\n")
	require.Equal(t, "AAAAA", top[0])
	require.Contains(t, top[1], "XX")

	bottom := strings.Split(Place(Config{Width: 5, Height: 5, Position: Bottom, PadY: 1}, fg, bg), "\n")
	require.Equal(t, "AAAAA", bottom[4])
	require.Contains(t, bottom[3], "XX")
}

func TestPlace_EmptyBackgroundIsPadded(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", "")
	require.Len(t, strings.Split(result, "\n"), 3)
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"

	result := Place(Config{Width: 3, Height: 3, Position: Center}, "X", bg)

	require.Contains(t, result, "\x1b[31m")
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		fgW    int
		fgH    int
		wantX  int
		wantY  int
	}{
		{"center", Config{Width: 10, Height: 10, Position: Center}, 4, 2, 3, 4},
		{"top padded", Config{Width: 10, Height: 10, Position: Top, PadY: 2}, 4, 2, 3, 2},
		{"bottom padded", Config{Width: 10, Height: 10, Position: Bottom, PadY: 1}, 4, 2, 3, 7},
		{"oversized clamps", Config{Width: 5, Height: 5, Position: Center}, 10, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := anchor(tt.cfg, tt.fgW, tt.fgH)
			require.Equal(t, tt.wantX, x)
			require.Equal(t, tt.wantY, y)
		})
	}
}

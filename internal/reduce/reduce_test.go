package reduce

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x7f},
		{0x01, 0x02, 0x03},
		{0xff, 0x00, 0x80, 0x2a},
		{1, 2, 3, 4, 5, 6, 7, 8},
	}
	for _, px := range cases {
		c := Pack(px, len(px))
		got := make([]byte, len(px))
		Unpack(c, got, len(px))
		if !bytes.Equal(got, px) {
			t.Errorf("round trip %v: got %v (packed %#x)", px, got, c)
		}
	}
}

func TestPackOrder(t *testing.T) {
	// Channel 0 lands in the most significant byte group.
	if got := Pack([]byte{0x12, 0x34, 0x56}, 3); got != 0x123456 {
		t.Errorf("pack: got %#x, want 0x123456", got)
	}
}

func TestDominantColorUniformTile(t *testing.T) {
	px := bytes.Repeat([]byte{10, 20, 30}, 16)
	want := Pack([]byte{10, 20, 30}, 3)
	if got := DominantColor(px, 16, 3); got != want {
		t.Errorf("uniform tile: got %#x, want %#x", got, want)
	}
}

func TestDominantColorMajority(t *testing.T) {
	// Single channel, tile [1,1,1,9]: 1 has three of four votes and hits the
	// threshold (4/2 = 2) on its second appearance.
	if got := DominantColor([]byte{1, 1, 1, 9}, 4, 1); got != 1 {
		t.Errorf("majority: got %d, want 1", got)
	}
}

func TestDominantColorTieBreak(t *testing.T) {
	// [5,5,7,7]: no strict majority; 5 reaches count 2 first in scan order.
	if got := DominantColor([]byte{5, 5, 7, 7}, 4, 1); got != 5 {
		t.Errorf("tie: got %d, want 5", got)
	}
	// Same colors, 7 first.
	if got := DominantColor([]byte{7, 7, 5, 5}, 4, 1); got != 7 {
		t.Errorf("tie reversed: got %d, want 7", got)
	}
}

func TestDominantColorEarlyExit(t *testing.T) {
	// A color reaching the threshold first wins no matter what follows it,
	// even an equal count of another color later in the scan.
	px := []byte{3, 3, 3, 3, 9, 9, 9, 9}
	if got := DominantColor(px, 8, 1); got != 3 {
		t.Errorf("early exit: got %d, want 3", got)
	}
}

func TestDominantColorSinglePixelTile(t *testing.T) {
	if got := DominantColor([]byte{0xaa, 0xbb, 0xcc}, 1, 3); got != 0xaabbcc {
		t.Errorf("1x1 tile: got %#x, want 0xaabbcc", got)
	}
}

func BenchmarkDominantColor(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	const tilePixels = 64 // 8x8 tile
	px := make([]byte, tilePixels*3)
	for i := range px {
		px[i] = byte(rng.Intn(4)) // few distinct colors, like real pixel art
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DominantColor(px, tilePixels, 3)
	}
}

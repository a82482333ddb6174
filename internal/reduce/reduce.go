// Package reduce implements the per-tile dominant color vote: each tile of
// the source collapses into the single color that appears most often in it.
package reduce

// Packed is a pixel's channel bytes concatenated into one integer key,
// channel 0 in the most significant used byte group. With up to MaxChannels
// channels it is a cheap, exact map key for vote counting.
type Packed uint64

// MaxChannels is the widest pixel Packed can represent. Callers must reject
// deeper pixel formats before reducing; packing more channels would overflow
// into the low bytes.
const MaxChannels = 8

// Pack folds the first channels bytes of px into a Packed key.
func Pack(px []byte, channels int) Packed {
	var c Packed
	for b := 0; b < channels; b++ {
		c |= Packed(px[b]) << uint((channels-1-b)*8)
	}
	return c
}

// Unpack writes the channel bytes of c into dst, inverse of Pack.
func Unpack(c Packed, dst []byte, channels int) {
	for b := 0; b < channels; b++ {
		dst[b] = byte(c >> uint((channels-1-b)*8))
	}
}

// DominantColor scans the first tilePixels pixels of pix (row-major,
// channel-interleaved) and returns the color with the most votes.
//
// The scan stops early once a color's count reaches tilePixels/2: nothing
// later can beat it for threshold purposes. Counts update the winner only on
// a strictly greater tally, so when colors tie the one that peaked first in
// scan order wins. Both rules are deliberate, kept behavior; this is not a
// strict-majority election.
func DominantColor(pix []byte, tilePixels, channels int) Packed {
	win := tilePixels / 2
	votes := make(map[Packed]int, tilePixels)

	var dominant Packed
	best := 0
	for i := 0; i < tilePixels; i++ {
		c := Pack(pix[i*channels:], channels)
		votes[c]++
		if n := votes[c]; n > best {
			best = n
			dominant = c
			if best >= win {
				break
			}
		}
	}
	return dominant
}

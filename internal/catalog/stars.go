package catalog

import "math"

const maxStars = 5

const (
	glyphFull  = "ri-star-fill"
	glyphHalf  = "ri-star-half-fill"
	glyphEmpty = "ri-star-line"
)

// StarRating splits a rating into full, half, and empty stars totalling five.
type StarRating struct {
	Full  int
	Half  int
	Empty int
}

// Stars clamps rate to [0,5]. Full stars are the floor, one half star is
// shown when the remainder is at least 0.5, and the rest are empty.
func Stars(rate float64) StarRating {
	if math.IsNaN(rate) || rate < 0 {
		rate = 0
	}
	if rate > maxStars {
		rate = maxStars
	}
	full := int(math.Floor(rate))
	half := 0
	if rate-float64(full) >= 0.5 {
		half = 1
	}
	return StarRating{Full: full, Half: half, Empty: maxStars - full - half}
}

// Glyphs returns the icon class of each star in display order.
func (s StarRating) Glyphs() []string {
	out := make([]string, 0, maxStars)
	for i := 0; i < s.Full; i++ {
		out = append(out, glyphFull)
	}
	for i := 0; i < s.Half; i++ {
		out = append(out, glyphHalf)
	}
	for i := 0; i < s.Empty; i++ {
		out = append(out, glyphEmpty)
	}
	return out
}

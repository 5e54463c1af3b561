package scoring

// Rating is a three-tier bucket of the performance score. The zero value is
// RatingLow, matching an unset score of 0.
type Rating int

const (
	RatingLow Rating = iota
	RatingMiddle
	RatingHigh
)

// RatingFor buckets score: below 6 is Low, 6 to 8 is Middle, 9 and up is High.
func RatingFor(score int) Rating {
	switch {
	case score >= highThreshold:
		return RatingHigh
	case score >= middleThreshold:
		return RatingMiddle
	default:
		return RatingLow
	}
}

func (r Rating) String() string {
	switch r {
	case RatingHigh:
		return "High"
	case RatingMiddle:
		return "Middle"
	default:
		return "Low"
	}
}

// MarshalText renders the rating name.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Package algo has the pure classification and ordering logic.
package algo

import "github.com/huangsam/satscout/schema"

// Classify returns the quality tier for a subject score.
// It is total over all integers: <= 450 is Low, <= 650 is Medium, anything above is High.
func Classify(score int) schema.Tier {
	switch {
	case score <= schema.LowTierMax:
		return schema.LowTier
	case score <= schema.MediumTierMax:
		return schema.MediumTier
	default:
		return schema.HighTier
	}
}

// ClassifyRaw converts a decoded API row into a classified Score.
func ClassifyRaw(raw schema.RawScore) *schema.Score {
	s := &schema.Score{
		DBN:        raw.DBN,
		TestTakers: int(raw.TestTakers),
		Reading:    int(raw.Reading),
		Math:       int(raw.Math),
		Writing:    int(raw.Writing),
	}
	s.ReadingTier = Classify(s.Reading)
	s.MathTier = Classify(s.Math)
	s.WritingTier = Classify(s.Writing)
	return s
}

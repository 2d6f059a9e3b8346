// Package ml holds the heuristic scoring used for check-in risk and doctor
// matching: normalized features combined with fixed weights. There are no
// trained models here.
package ml

import (
	"math"

	"github.com/Enigmah-00/MindBridge-sub000/models"
)

// Risk feature weights. Mood and stress dominate; sleep counts by how far it
// drifts from eight hours in either direction.
const (
	moodWeight     = 0.30
	stressWeight   = 0.25
	socialWeight   = 0.20
	sleepWeight    = 0.15
	appetiteWeight = 0.10

	idealSleepHours = 8.0
)

// RiskScore computes a 0-100 risk score and band for one daily check-in.
// Each field is normalized to [0,1] where 1 is the concerning end of the
// scale, then combined as a weighted sum.
func RiskScore(c *models.DailyCheckin) (float64, models.RiskBand) {
	mood := inverted10(c.Mood)
	stress := scaled10(c.StressLevel)
	appetite := inverted10(c.Appetite)
	social := inverted10(c.SocialContact)
	sleep := clamp01(math.Abs(c.SleepHours-idealSleepHours) / 4.0)

	score := 100 * (moodWeight*mood +
		stressWeight*stress +
		socialWeight*social +
		sleepWeight*sleep +
		appetiteWeight*appetite)

	return score, BandFor(score)
}

// BandFor maps a 0-100 risk score onto the coarse bands shown to clinicians.
func BandFor(score float64) models.RiskBand {
	switch {
	case score >= 70:
		return models.RiskHigh
	case score >= 40:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// inverted10 maps a 1-10 scale where 10 is good onto [0,1] where 1 is bad.
func inverted10(v int) float64 {
	return clamp01(float64(10-v) / 9.0)
}

// scaled10 maps a 1-10 scale where 10 is bad onto [0,1].
func scaled10(v int) float64 {
	return clamp01(float64(v-1) / 9.0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package ml

import (
	"sort"
	"strings"

	"github.com/Enigmah-00/MindBridge-sub000/models"
)

// MatchCriteria is what a patient tells the matcher about the doctor they
// are looking for. Zero values mean "no preference".
type MatchCriteria struct {
	Specialization string `json:"specialization"`
	Language       string `json:"language"`
	MaxFeeCents    int64  `json:"max_fee_cents"`
}

type RankedDoctor struct {
	Profile models.DoctorProfile `json:"profile"`
	Score   float64              `json:"score"`
}

const (
	specialtyWeight  = 0.35
	ratingWeight     = 0.25
	feeWeight        = 0.15
	experienceWeight = 0.15
	languageWeight   = 0.10

	// Experience saturates: twenty years scores no better than twenty-five.
	experienceCapYears = 20.0
)

// RankDoctors scores every candidate against the criteria and returns them
// sorted best first. Scores are weighted sums of normalized features; a
// doctor whose fee exceeds the patient's stated maximum scores zero on the
// fee feature but is still listed.
func RankDoctors(criteria MatchCriteria, doctors []models.DoctorProfile) []RankedDoctor {
	ranked := make([]RankedDoctor, 0, len(doctors))
	for _, doc := range doctors {
		ranked = append(ranked, RankedDoctor{
			Profile: doc,
			Score:   matchScore(criteria, &doc),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func matchScore(criteria MatchCriteria, doc *models.DoctorProfile) float64 {
	var specialty float64
	if criteria.Specialization == "" ||
		strings.EqualFold(criteria.Specialization, doc.Specialization) {
		specialty = 1
	}

	var language float64
	if criteria.Language == "" || hasLanguage(doc.Languages, criteria.Language) {
		language = 1
	}

	fee := 1.0
	if criteria.MaxFeeCents > 0 {
		if doc.FeeCents > criteria.MaxFeeCents {
			fee = 0
		} else {
			// Cheaper relative to the budget scores higher.
			fee = 1 - float64(doc.FeeCents)/float64(criteria.MaxFeeCents)
		}
	}

	experience := clamp01(float64(doc.YearsExperience) / experienceCapYears)
	rating := clamp01(doc.AvgRating / 5.0)

	return specialtyWeight*specialty +
		ratingWeight*rating +
		feeWeight*fee +
		experienceWeight*experience +
		languageWeight*language
}

func hasLanguage(csv, want string) bool {
	for _, lang := range strings.Split(csv, ",") {
		if strings.EqualFold(strings.TrimSpace(lang), want) {
			return true
		}
	}
	return false
}

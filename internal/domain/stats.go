package domain

import "math"

// DashboardStats aggregates history records for the stats view.
type DashboardStats struct {
	Total           int
	Safe            int
	Flagged         int
	AvgConfidence   int
	Distribution    map[Classification]int
	EmotionAverages Emotions
	EmotionSamples  int
}

// ComputeStats aggregates records. Each emotion average is the field's sum over all
// records divided by the record count; records without emotions contribute zero.
func ComputeStats(records []AnalysisRecord) DashboardStats {
	stats := DashboardStats{
		Total:        len(records),
		Distribution: make(map[Classification]int),
	}
	if len(records) == 0 {
		return stats
	}

	var confidenceSum float64
	var sum Emotions
	for _, rec := range records {
		stats.Distribution[rec.Classification]++
		if rec.Classification.IsFlagged() {
			stats.Flagged++
		} else {
			stats.Safe++
		}
		confidenceSum += rec.Confidence
		if rec.Emotions != nil {
			stats.EmotionSamples++
			sum.Anger += rec.Emotions.Anger
			sum.Fear += rec.Emotions.Fear
			sum.Sadness += rec.Emotions.Sadness
			sum.Disgust += rec.Emotions.Disgust
			sum.Joy += rec.Emotions.Joy
		}
	}

	stats.AvgConfidence = int(math.Round(confidenceSum / float64(len(records))))
	if stats.EmotionSamples > 0 {
		n := float64(len(records))
		stats.EmotionAverages = Emotions{
			Anger:   math.Round(sum.Anger / n),
			Fear:    math.Round(sum.Fear / n),
			Sadness: math.Round(sum.Sadness / n),
			Disgust: math.Round(sum.Disgust / n),
			Joy:     math.Round(sum.Joy / n),
		}
	}
	return stats
}

package health

import "github.com/yanqian/pairhealth/pkg/coerce"

// CheckinRequest is a daily check-in as the backend expects it.
type CheckinRequest struct {
	CheckinDate        string   `json:"checkinDate"`
	MoodScore          float64  `json:"moodScore"`
	RelationshipScore  float64  `json:"relationshipScore"`
	CommunicationScore float64  `json:"communicationScore"`
	SleepHours         float64  `json:"sleepHours"`
	ExerciseMinutes    float64  `json:"exerciseMinutes"`
	DietScore          *float64 `json:"dietScore,omitempty"`
	EmotionType        string   `json:"emotionType,omitempty"`
	Diary              string   `json:"diary,omitempty"`
}

// TodayCheckin reports whether the user has checked in today.
type TodayCheckin struct {
	HasChecked     bool          `json:"hasChecked"`
	Checkin        coerce.Object `json:"checkin"`
	ContinuousDays float64       `json:"continuousDays"`
}

// Score is the current health score. Score mirrors CurrentScore for older views.
type Score struct {
	CurrentScore float64 `json:"currentScore"`
	Score        float64 `json:"score"`
	WeeklyAvg    float64 `json:"weeklyAvg"`
	Trend        string  `json:"trend"`
}

// Streak counts consecutive and total check-in days.
type Streak struct {
	Days           float64 `json:"days"`
	ContinuousDays float64 `json:"continuousDays"`
	Total          float64 `json:"total"`
}

// Stats aggregates check-ins for the statistics screen.
type Stats struct {
	TotalCheckins float64 `json:"totalCheckins"`
	AvgMood       float64 `json:"avgMood"`
	AvgSleep      float64 `json:"avgSleep"`
	StreakDays    float64 `json:"streakDays"`
	BestDay       string  `json:"bestDay"`
	BestMood      float64 `json:"bestMood"`
	TrendData     []any   `json:"trendData"`
}

// History is a page of check-in records with the legacy field aliases filled in.
type History struct {
	Records []coerce.Object `json:"records"`
	Extra   coerce.Object   `json:"-"`
}

type historyFields History

func (h History) MarshalJSON() ([]byte, error) {
	return coerce.Merge(historyFields(h), h.Extra)
}

// Defaults for list endpoints.
const (
	DefaultHistorySize = 10
	DefaultStatsPeriod = "week"
	DefaultTrendDays   = 30
	trendNone          = "NONE"
)

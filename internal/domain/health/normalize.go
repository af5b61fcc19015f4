package health

import "github.com/yanqian/pairhealth/pkg/coerce"

// NormalizeToday maps the today endpoint. A missing payload means not checked in.
func NormalizeToday(data any) TodayCheckin {
	obj := coerce.ObjectOrNil(data)
	if obj == nil {
		return TodayCheckin{}
	}
	out := TodayCheckin{
		HasChecked:     coerce.Bool(obj["hasChecked"]),
		ContinuousDays: coerce.Number(obj["continuousDays"], 0),
	}
	if coerce.Truthy(obj["checkin"]) {
		out.Checkin = coerce.ObjectOrNil(obj["checkin"])
	}
	return out
}

// NormalizeScore maps the score endpoint.
func NormalizeScore(data any) Score {
	obj := coerce.AsObject(data)
	current := coerce.Number(coerce.First(obj, "currentScore", "score"), 0)
	return Score{
		CurrentScore: current,
		Score:        current,
		WeeklyAvg:    coerce.Number(obj["weeklyAvg"], 0),
		Trend:        coerce.StringOr(obj, trendNone, "trend"),
	}
}

// NormalizeStreak maps the streak endpoint.
func NormalizeStreak(data any) Streak {
	obj := coerce.AsObject(data)
	days := coerce.Number(coerce.First(obj, "continuousDays", "days"), 0)
	return Streak{
		Days:           days,
		ContinuousDays: days,
		Total:          coerce.Number(coerce.First(obj, "totalCheckinDays", "total"), 0),
	}
}

// NormalizeStats maps the statistics endpoint. When the backend omits the
// best day it is taken from the trend point with the highest mood.
func NormalizeStats(data any) Stats {
	obj := coerce.AsObject(data)
	trend := coerce.ArrayField(obj, "trendData")

	var best coerce.Object
	for _, item := range trend {
		point := coerce.AsObject(item)
		if best == nil || coerce.Number(point["moodScore"], 0) > coerce.Number(best["moodScore"], 0) {
			best = point
		}
	}

	bestDay := coerce.String(obj, "bestDay")
	if bestDay == "" && best != nil {
		bestDay = coerce.String(best, "date")
	}
	bestMood := coerce.First(obj, "bestMood")
	if bestMood == nil && best != nil {
		bestMood = best["moodScore"]
	}

	return Stats{
		TotalCheckins: coerce.Number(coerce.First(obj, "totalCheckins", "checkinCount"), 0),
		AvgMood:       coerce.Number(coerce.First(obj, "avgMood", "avgMoodScore"), 0),
		AvgSleep:      coerce.Number(coerce.First(obj, "avgSleep", "avgSleepHours"), 0),
		StreakDays:    coerce.Number(obj["streakDays"], 0),
		BestDay:       bestDay,
		BestMood:      coerce.Number(bestMood, 0),
		TrendData:     trend,
	}
}

// NormalizeHistory maps the check-in list, adding dietQuality and remark
// aliases for records that only carry dietScore and diary.
func NormalizeHistory(data any) History {
	obj := coerce.AsObject(data)
	raw := coerce.ArrayField(obj, "records", "list")
	records := make([]coerce.Object, 0, len(raw))
	for _, item := range raw {
		records = append(records, normalizeRecord(coerce.AsObject(item)))
	}
	return History{Records: records, Extra: obj}
}

func normalizeRecord(item coerce.Object) coerce.Object {
	out := make(coerce.Object, len(item)+2)
	for k, v := range item {
		out[k] = v
	}
	if v := coerce.First(item, "dietQuality", "dietScore"); v != nil {
		out["dietQuality"] = v
	}
	if v := coerce.First(item, "remark", "diary"); v != nil {
		out["remark"] = v
	}
	return out
}

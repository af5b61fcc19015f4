package partner

import "github.com/yanqian/pairhealth/pkg/coerce"

// NormalizeRelationshipStatus maps the pairing status endpoint.
func NormalizeRelationshipStatus(data any) RelationshipStatus {
	obj := coerce.AsObject(data)
	return RelationshipStatus{
		RelationshipID:    coerce.FirstID(obj, "relationshipId", "id"),
		HasPartner:        coerce.Bool(obj["hasPartner"]),
		Status:            coerce.String(obj, "status"),
		BindStatus:        coerce.String(obj, "bindStatus"),
		PartnerID:         coerce.FirstID(obj, "partnerId"),
		PartnerNickname:   coerce.String(obj, "partnerNickname", "partnerName"),
		PartnerAvatar:     coerce.String(obj, "partnerAvatar", "avatar"),
		InviteCode:        coerce.String(obj, "inviteCode"),
		StartDate:         coerce.String(obj, "startDate"),
		HealthScore:       coerce.NumberAt(obj, "healthScore", defaultHealthScore),
		SharedCheckinDays: coerce.Number(obj["sharedCheckinDays"], 0),
		CreateTime:        coerce.String(obj, "createTime"),
	}
}

// NormalizeCheckinStatus maps today's shared check-in state.
func NormalizeCheckinStatus(data any) CheckinStatus {
	obj := coerce.AsObject(data)
	return CheckinStatus{
		Date:             coerce.String(obj, "date"),
		MeCompleted:      coerce.Bool(coerce.First(obj, "meCompleted", "selfCompleted", "userCompleted")),
		PartnerCompleted: coerce.Bool(obj["partnerCompleted"]),
		MyMoodScore:      coerce.Number(obj["myMoodScore"], 0),
		PartnerMoodScore: coerce.Number(obj["partnerMoodScore"], 0),
		BothCompleted:    coerce.Bool(obj["bothCompleted"]),
	}
}

// NormalizeCheckinRecords maps the shared check-in history list.
func NormalizeCheckinRecords(data any) []CheckinRecord {
	raw := coerce.Array(data)
	out := make([]CheckinRecord, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		out = append(out, CheckinRecord{
			Date:               coerce.String(obj, "date", "checkinDate"),
			BothCompleted:      coerce.Bool(obj["bothCompleted"]),
			MyMoodScore:        coerce.Number(coerce.First(obj, "myMoodScore", "moodScore"), 0),
			PartnerMoodScore:   coerce.Number(obj["partnerMoodScore"], 0),
			MyEmotionType:      coerce.String(obj, "myEmotionType"),
			PartnerEmotionType: coerce.String(obj, "partnerEmotionType"),
		})
	}
	return out
}

// NormalizeRelationshipHealth maps the relationship health endpoint.
func NormalizeRelationshipHealth(data any) RelationshipHealth {
	obj := coerce.AsObject(data)
	return RelationshipHealth{
		OverallScore:       coerce.Number(obj["overallScore"], 0),
		MoodAlignment:      coerce.Number(obj["moodAlignment"], 0),
		CheckinConsistency: coerce.Number(obj["checkinConsistency"], 0),
		CommunicationScore: coerce.Number(obj["communicationScore"], 0),
		ContractCompletion: coerce.Number(obj["contractCompletion"], 0),
		Suggestion:         coerce.String(obj, "suggestion"),
	}
}

// NormalizeContracts maps the contract list.
func NormalizeContracts(data any) []Contract {
	raw := coerce.Array(data)
	out := make([]Contract, 0, len(raw))
	for _, item := range raw {
		out = append(out, normalizeContract(coerce.AsObject(item)))
	}
	return out
}

func normalizeContract(obj coerce.Object) Contract {
	return Contract{
		ID:               coerce.FirstID(obj, "id"),
		Title:            coerce.String(obj, "title"),
		Content:          coerce.String(obj, "content"),
		TargetValue:      coerce.String(obj, "targetValue"),
		RewardPoints:     coerce.Number(obj["rewardPoints"], 0),
		Status:           coerce.String(obj, "status"),
		Progress:         coerce.Number(obj["progress"], 0),
		CreatorCompleted: coerce.Number(obj["creatorCompleted"], 0),
		PartnerCompleted: coerce.Number(obj["partnerCompleted"], 0),
		Extra:            obj,
	}
}

// NormalizePoints maps the points balance.
func NormalizePoints(data any) Points {
	obj := coerce.AsObject(data)
	return Points{
		TotalPoints:     coerce.Number(obj["totalPoints"], 0),
		AvailablePoints: coerce.Number(obj["availablePoints"], 0),
		UsedPoints:      coerce.Number(obj["usedPoints"], 0),
		Rank:            coerce.Number(obj["rank"], 0),
	}
}

// NormalizePointsRecords maps the points history list.
func NormalizePointsRecords(data any) []PointsRecord {
	raw := coerce.Array(data)
	out := make([]PointsRecord, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		out = append(out, PointsRecord{
			ID:          coerce.FirstID(obj, "id"),
			Points:      coerce.Number(coerce.First(obj, "points", "changePoints"), 0),
			Type:        coerce.String(obj, "type"),
			Description: coerce.StringOr(obj, defaultPointsDescription, "description", "reason"),
			CreateTime:  coerce.String(obj, "createTime", "time"),
			Extra:       obj,
		})
	}
	return out
}

package partner

import "github.com/yanqian/pairhealth/pkg/coerce"

// RelationshipStatus describes the pairing with a partner.
type RelationshipStatus struct {
	RelationshipID    coerce.ID `json:"relationshipId"`
	HasPartner        bool      `json:"hasPartner"`
	Status            string    `json:"status"`
	BindStatus        string    `json:"bindStatus"`
	PartnerID         coerce.ID `json:"partnerId"`
	PartnerNickname   string    `json:"partnerNickname"`
	PartnerAvatar     string    `json:"partnerAvatar"`
	InviteCode        string    `json:"inviteCode"`
	StartDate         string    `json:"startDate"`
	HealthScore       float64   `json:"healthScore"`
	SharedCheckinDays float64   `json:"sharedCheckinDays"`
	CreateTime        string    `json:"createTime"`
}

// CheckinStatus is today's check-in state for both partners.
type CheckinStatus struct {
	Date             string  `json:"date"`
	MeCompleted      bool    `json:"meCompleted"`
	PartnerCompleted bool    `json:"partnerCompleted"`
	MyMoodScore      float64 `json:"myMoodScore"`
	PartnerMoodScore float64 `json:"partnerMoodScore"`
	BothCompleted    bool    `json:"bothCompleted"`
}

// CheckinRecord is one day of the shared check-in history.
type CheckinRecord struct {
	Date               string  `json:"date"`
	BothCompleted      bool    `json:"bothCompleted"`
	MyMoodScore        float64 `json:"myMoodScore"`
	PartnerMoodScore   float64 `json:"partnerMoodScore"`
	MyEmotionType      string  `json:"myEmotionType"`
	PartnerEmotionType string  `json:"partnerEmotionType"`
}

// RelationshipHealth scores the relationship along several axes.
type RelationshipHealth struct {
	OverallScore       float64 `json:"overallScore"`
	MoodAlignment      float64 `json:"moodAlignment"`
	CheckinConsistency float64 `json:"checkinConsistency"`
	CommunicationScore float64 `json:"communicationScore"`
	ContractCompletion float64 `json:"contractCompletion"`
	Suggestion         string  `json:"suggestion"`
}

// Contract is a shared commitment between partners. Extra keeps the
// remaining backend fields.
type Contract struct {
	ID               coerce.ID     `json:"id"`
	Title            string        `json:"title"`
	Content          string        `json:"content"`
	TargetValue      string        `json:"targetValue"`
	RewardPoints     float64       `json:"rewardPoints"`
	Status           string        `json:"status"`
	Progress         float64       `json:"progress"`
	CreatorCompleted float64       `json:"creatorCompleted"`
	PartnerCompleted float64       `json:"partnerCompleted"`
	Extra            coerce.Object `json:"-"`
}

type contractFields Contract

func (c Contract) MarshalJSON() ([]byte, error) {
	return coerce.Merge(contractFields(c), c.Extra)
}

// Points is the couple's points balance.
type Points struct {
	TotalPoints     float64 `json:"totalPoints"`
	AvailablePoints float64 `json:"availablePoints"`
	UsedPoints      float64 `json:"usedPoints"`
	Rank            float64 `json:"rank"`
}

// PointsRecord is one points change.
type PointsRecord struct {
	ID          coerce.ID     `json:"id"`
	Points      float64       `json:"points"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	CreateTime  string        `json:"createTime"`
	Extra       coerce.Object `json:"-"`
}

type pointsRecordFields PointsRecord

func (r PointsRecord) MarshalJSON() ([]byte, error) {
	return coerce.Merge(pointsRecordFields(r), r.Extra)
}

// ContractRequest creates a contract.
type ContractRequest struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	ContractType string  `json:"contractType,omitempty"`
	TargetValue  string  `json:"targetValue,omitempty"`
	Period       string  `json:"period,omitempty"`
	StartDate    string  `json:"startDate,omitempty"`
	EndDate      string  `json:"endDate,omitempty"`
	RewardPoints float64 `json:"rewardPoints,omitempty"`
}

const (
	defaultHealthScore       = 50
	defaultPointsDescription = "Points change"
	DefaultPageSize          = 10
)

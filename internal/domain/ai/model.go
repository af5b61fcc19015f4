package ai

import (
	"time"

	"github.com/yanqian/pairhealth/pkg/coerce"
)

// ConsultRequest is the question sent to the consultation endpoint.
type ConsultRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId,omitempty"`
}

// ConsultResult is the canonical consultation answer. Extra carries every
// other backend field through unchanged.
type ConsultResult struct {
	Answer              string        `json:"answer"`
	Recommendations     []string      `json:"recommendations"`
	RecommendedServices []any         `json:"recommendedServices"`
	Extra               coerce.Object `json:"-"`
}

// consultFields drops ConsultResult's methods for encoding.
type consultFields ConsultResult

func (r ConsultResult) MarshalJSON() ([]byte, error) {
	return coerce.Merge(consultFields(r), r.Extra)
}

// Config bounds the consultation retry.
type Config struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Defaults for Config.
const (
	DefaultMaxAttempts = 2
	DefaultBackoff     = 600 * time.Millisecond
	DefaultHistorySize = 20
)

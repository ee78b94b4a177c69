package submission

import (
	"time"

	"github.com/google/uuid"
)

type Phase int

const (
	Idle Phase = iota
	PreparingProof
	AwaitingSignature
	Broadcasting
	Completed
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PreparingProof:
		return "preparing_proof"
	case AwaitingSignature:
		return "awaiting_signature"
	case Broadcasting:
		return "broadcasting"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Terminal reports whether no further phase follows p.
func (p Phase) Terminal() bool {
	return p == Completed || p == Failed
}

// Attempt is one pass through the submission phases. It is never retried.
type Attempt struct {
	ID              uuid.UUID `json:"id"`
	Phase           Phase     `json:"phase"`
	Provider        string    `json:"provider"`
	ContractAddress string    `json:"contractAddress"`
	TxHash          string    `json:"txHash,omitempty"`
	Failure         string    `json:"failure,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt,omzero"`
}

// Result describes a completed attempt.
type Result struct {
	AttemptID uuid.UUID `json:"attemptId"`
	// TxHash is empty when the wallet did not report one.
	TxHash string `json:"txHash,omitempty"`
}

package presenter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/submission"
)

const (
	LabelInstallWallet = "Install Wallet"
	LabelGetStarted    = "Get Started"
	LabelSubmitReport  = "Submit Report"
	LabelSubmitting    = "Submitting..."

	NoWalletBanner = "No Midnight wallet detected. Please install the Midnight Lace browser extension to continue."

	contractPreviewLen = 20
)

type ActionKind string

const (
	ActionInstall ActionKind = "install"
	ActionConnect ActionKind = "connect"
	ActionSubmit  ActionKind = "submit"
)

// Action is the primary button.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	Enabled bool       `json:"enabled"`
}

type WalletView struct {
	Available     bool          `json:"available"`
	Providers     []string      `json:"providers,omitempty"`
	State         session.State `json:"state"`
	Connected     bool          `json:"connected"`
	Provider      string        `json:"provider,omitempty"`
	CanDisconnect bool          `json:"canDisconnect"`
}

type ReportsView struct {
	Total       decimal.Decimal `json:"total"`
	Known       bool            `json:"known"`
	RefreshedAt time.Time       `json:"refreshedAt,omzero"`
}

// View is everything the user-facing surface renders.
type View struct {
	PrimaryAction   Action              `json:"primaryAction"`
	Message         *Notice             `json:"message,omitempty"`
	Wallet          WalletView          `json:"wallet"`
	Banner          string              `json:"banner,omitempty"`
	Reports         ReportsView         `json:"reports"`
	ContractAddress string              `json:"contractAddress"`
	Network         string              `json:"network"`
	Submitting      bool                `json:"submitting"`
	LastSubmission  *submission.Attempt `json:"lastSubmission,omitempty"`
}

func primaryAction(available bool, state session.State, submitting bool) Action {
	switch {
	case state == session.Connected && submitting:
		return Action{Kind: ActionSubmit, Label: LabelSubmitting}
	case state == session.Connected:
		return Action{Kind: ActionSubmit, Label: LabelSubmitReport, Enabled: true}
	case !available:
		return Action{Kind: ActionInstall, Label: LabelInstallWallet}
	default:
		return Action{Kind: ActionConnect, Label: LabelGetStarted, Enabled: state == session.Disconnected}
	}
}

// ShortenAddress keeps the first characters of a contract address for display.
func ShortenAddress(address string) string {
	if len(address) <= contractPreviewLen {
		return address
	}
	return address[:contractPreviewLen] + "..."
}

// NetworkLabel names a network id for display.
func NetworkLabel(networkID string) string {
	switch networkID {
	case "":
		return ""
	case "undeployed":
		return "Undeployed (Standalone)"
	default:
		return strings.ToUpper(networkID[:1]) + networkID[1:]
	}
}

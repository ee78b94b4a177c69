package submission

const (
	MsgConnectFirst   = "Please connect your wallet first"
	MsgPreparingProof = "Preparing zero-knowledge proof..."
	MsgRequestingSign = "Requesting wallet signature..."
	MsgBroadcasting   = "Submitting to Midnight Network..."
	MsgCompleted      = "Report submitted anonymously! Your identity is protected by zero-knowledge proofs."
	MsgDeclined       = "Transaction signature declined"
	msgFailedPrefix   = "Failed to submit report: "
)

// Notifier receives the progress line of an attempt.
type Notifier interface {
	// Post shows a message until the next one.
	Post(text string)
	// Flash shows a message that clears itself.
	Flash(text string)
}

type discardNotifier struct{}

func (discardNotifier) Post(string)  {}
func (discardNotifier) Flash(string) {}

func failureMessage(detail string) string {
	return msgFailedPrefix + detail
}

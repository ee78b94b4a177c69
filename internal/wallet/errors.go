package wallet

import (
	"errors"
	"fmt"
)

// CodeUserRejected is reported by wallets when the user declines a request.
const CodeUserRejected = 4001

// Error is an error reported by the wallet itself.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// IsUserRejection reports whether err carries the wallet's user-decline code.
func IsUserRejection(err error) bool {
	var walletErr *Error
	return errors.As(err, &walletErr) && walletErr.Code == CodeUserRejected
}

package engine

import "errors"

// ErrAlreadyCheckedIn is returned by MarkQuickCheckin when today's wake or
// sleep flag is already set. Recoverable; inform the user, don't retry.
var ErrAlreadyCheckedIn = errors.New("already checked in today")

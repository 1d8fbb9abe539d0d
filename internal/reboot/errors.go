package reboot

import (
	"fmt"
	"time"
)

// WaitTimeoutError indicates an instance did not pass its status checks
// within the allotted time.
type WaitTimeoutError struct {
	InstanceID string
	Timeout    time.Duration
}

// Error implements the error interface.
func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("instance %s did not pass status checks within %s", e.InstanceID, e.Timeout)
}

// NewWaitTimeoutError creates a new WaitTimeoutError.
func NewWaitTimeoutError(instanceID string, timeout time.Duration) *WaitTimeoutError {
	return &WaitTimeoutError{InstanceID: instanceID, Timeout: timeout}
}

package ec2

import (
	"fmt"
	"strings"
)

// InstanceNotFoundError indicates no instance matches an ID or Name tag.
type InstanceNotFoundError struct {
	Target string
}

// Error implements the error interface.
func (e *InstanceNotFoundError) Error() string {
	return fmt.Sprintf("no instance found for %q", e.Target)
}

// NewInstanceNotFoundError creates a new InstanceNotFoundError.
func NewInstanceNotFoundError(target string) *InstanceNotFoundError {
	return &InstanceNotFoundError{Target: target}
}

// AmbiguousNameError indicates a Name tag matched more than one instance.
type AmbiguousNameError struct {
	Name string
	IDs  []string
}

// Error implements the error interface.
func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("multiple instances found with Name tag %q (%s), use --instance-id instead",
		e.Name, strings.Join(e.IDs, ", "))
}

// NewAmbiguousNameError creates a new AmbiguousNameError.
func NewAmbiguousNameError(name string, ids []string) *AmbiguousNameError {
	return &AmbiguousNameError{Name: name, IDs: ids}
}

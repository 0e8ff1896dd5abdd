package health

import (
	"context"
	"time"
)

const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp Status = "up"
	// StatusDegraded means only optional dependencies are down; the service still takes traffic.
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type optionalChecker struct {
	Checker
}

// Optional marks a dependency whose outage degrades the service without
// taking it out of rotation (delivery de-duplication, audit indexing).
func Optional(c Checker) Checker {
	if c == nil {
		return nil
	}
	return optionalChecker{Checker: c}
}

func isOptional(c Checker) bool {
	_, ok := c.(optionalChecker)
	return ok
}

package health

import (
	"context"
	"sync"
)

type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	r := &Registry{}
	for _, c := range checkers {
		r.Register(c)
	}
	return r
}

// Register adds a checker. Nil checkers are ignored.
func (r *Registry) Register(c Checker) {
	if c == nil {
		return
	}
	r.checkers = append(r.checkers, c)
}

type CheckResult struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs the checkers concurrently. A failed required checker makes
// the service down; a failed optional one only degrades it.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	if len(r.checkers) == 0 {
		return ReadinessResponse{Status: StatusUp}
	}

	results := make([]CheckResult, len(r.checkers))
	var wg sync.WaitGroup
	for i, checker := range r.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := checker.Check(ctx)
			results[i] = CheckResult{
				Name:     checker.Name(),
				Status:   res.Status,
				Optional: isOptional(checker),
				Message:  res.Message,
			}
		}()
	}
	wg.Wait()

	return ReadinessResponse{Status: overallStatus(results), Checks: results}
}

func overallStatus(results []CheckResult) Status {
	overall := StatusUp
	for _, res := range results {
		if res.Status != StatusDown {
			continue
		}
		if !res.Optional {
			return StatusDown
		}
		overall = StatusDegraded
	}
	return overall
}

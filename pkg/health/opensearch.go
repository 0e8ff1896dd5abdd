package health

import (
	"context"
	"fmt"

	"github.com/opensearch-project/opensearch-go"
)

// OpenSearchChecker checks cluster health of the audit event store.
type OpenSearchChecker struct {
	client *opensearch.Client
}

func NewOpenSearchChecker(client *opensearch.Client) *OpenSearchChecker {
	return &OpenSearchChecker{client: client}
}

func (c *OpenSearchChecker) Name() string {
	return "opensearch"
}

// Check reports down on transport errors and red cluster status responses.
func (c *OpenSearchChecker) Check(ctx context.Context) Result {
	res, err := c.client.Cluster.Health(c.client.Cluster.Health.WithContext(ctx))
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.IsError() {
		return Result{Status: StatusDown, Message: fmt.Sprintf("cluster health: %s", res.Status())}
	}
	return Result{Status: StatusUp}
}

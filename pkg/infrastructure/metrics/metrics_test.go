package metrics

import (
	"testing"
	"time"

	"github.com/planbeam/solver/pkg/infrastructure/config"
)

// Runs before TestInitMetrics: the package must be safe to use without
// initialization, since the CLI never calls InitMetrics.
func TestRecordHelpers_UninitializedNoOp(t *testing.T) {
	if SolveRunsTotal != nil {
		t.Skip("metrics already initialized by another test")
	}
	RecordSolve("success", time.Now())
	RecordPlannedOrder("Purchase")
	RecordInfeasible()
}

func TestInitMetrics(t *testing.T) {
	InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "solver_metrics_test"},
	})

	if SolveRunsTotal == nil || SolveDuration == nil {
		t.Fatal("Expected solve metrics to be initialized")
	}
	if HTTPRequestsTotal == nil || HTTPRequestDuration == nil {
		t.Fatal("Expected HTTP metrics to be initialized")
	}
	if PlannedOrders == nil || InfeasibleCounter == nil {
		t.Fatal("Expected order metrics to be initialized")
	}

	RecordSolve("success", time.Now())
	RecordPlannedOrder("Production")
	RecordInfeasible()
}

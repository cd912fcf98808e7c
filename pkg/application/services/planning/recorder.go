package planning

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/domain/entities"
	"github.com/planbeam/solver/pkg/infrastructure/events"
)

// TraceRecorder accumulates, per demand order, the ordered sequence of
// planning decisions taken on its behalf at every BOM level. Data flows
// one way: the planner writes, nothing here feeds back into planning.
type TraceRecorder struct {
	store events.EventStore

	mutex sync.Mutex
	meta  map[string]traceMeta
}

type traceMeta struct {
	item entities.ItemID
	qty  entities.DemandOrder
}

// NewTraceRecorder creates a recorder backed by an in-memory event store
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{
		store: events.NewInMemoryEventStore(),
		meta:  make(map[string]traceMeta),
	}
}

// Begin registers a demand order before any steps are recorded, so
// orders that trigger no decisions still appear in the trace output
func (t *TraceRecorder) Begin(demand *entities.DemandOrder) {
	t.mutex.Lock()
	t.meta[demand.OrderID] = traceMeta{item: demand.ItemID, qty: *demand}
	t.mutex.Unlock()

	// Creates the stream in first-demand order.
	_ = t.store.AppendEvent(demand.OrderID, events.NewEvent(
		events.TraceOpenedEvent, demand.OrderID, nil))
}

// Record appends one decision step to a demand order's stream
func (t *TraceRecorder) Record(orderID string, step entities.TraceStep) {
	_ = t.store.AppendEvent(orderID, events.NewEvent(
		events.DecisionRecordedEvent, orderID, events.DecisionRecorded{Step: step}))
}

// Traces assembles the per-order decision records in demand order
func (t *TraceRecorder) Traces() []entities.DemandTrace {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	streamIDs := t.store.StreamIDs()
	traces := make([]entities.DemandTrace, 0, len(streamIDs))

	for _, orderID := range streamIDs {
		meta, ok := t.meta[orderID]
		if !ok {
			continue
		}

		evts, _ := t.store.ReadEvents(orderID, 1)
		steps := make([]entities.TraceStep, 0, len(evts))
		for _, evt := range evts {
			if decision, ok := evt.Data().(events.DecisionRecorded); ok {
				steps = append(steps, decision.Step)
			}
		}

		traces = append(traces, entities.DemandTrace{
			OrderID: orderID,
			Item:    meta.item,
			Qty:     meta.qty.Quantity,
			Due:     meta.qty.DueDate.Format(entities.DateLayout),
			Steps:   steps,
		})
	}

	return traces
}

// RunLog collects the run's diagnostic lines in order, mirroring each
// one to the structured logger. The collected form is what ships in the
// response's system_logs.
type RunLog struct {
	mutex   sync.Mutex
	entries []string
	log     *zap.Logger
}

// NewRunLog creates a run log writing through to the given logger
func NewRunLog(log *zap.Logger) *RunLog {
	return &RunLog{
		entries: make([]string, 0, 64),
		log:     log,
	}
}

// Logf appends a timestamped line to the run log
func (r *RunLog) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	r.mutex.Lock()
	r.entries = append(r.entries, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	r.mutex.Unlock()

	if r.log != nil {
		r.log.Info(msg)
	}
}

// Entries returns the collected lines in append order
func (r *RunLog) Entries() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

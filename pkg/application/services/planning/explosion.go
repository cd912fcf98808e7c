package planning

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planbeam/solver/pkg/domain/entities"
)

// requirement is one unit of planning work: a quantity of an item needed
// by a date, attributed to the customer demand that ultimately caused it.
type requirement struct {
	orderID string
	itemID  entities.ItemID
	qty     decimal.Decimal
	due     time.Time
	direct  bool
}

// workQueue drains requirements in ascending low-level-code order so
// that every parent's orders are fixed before its components are
// netted. Dependent requirements pushed while processing level N always
// belong to a deeper level, so a single sweep covers the whole tree.
type workQueue struct {
	levels   map[entities.ItemID]int
	maxLevel int
	tiers    map[int][]requirement
}

func newWorkQueue(levels map[entities.ItemID]int, maxLevel int) *workQueue {
	return &workQueue{
		levels:   levels,
		maxLevel: maxLevel,
		tiers:    make(map[int][]requirement, maxLevel+1),
	}
}

func (q *workQueue) push(req requirement) {
	level := q.levels[req.itemID]
	if level > q.maxLevel {
		q.maxLevel = level
	}
	q.tiers[level] = append(q.tiers[level], req)
}

// drain calls process for each requirement, tier by tier. process may
// push deeper requirements; same-tier pushes are handled before moving on.
func (q *workQueue) drain(process func(requirement)) {
	for level := 0; level <= q.maxLevel; level++ {
		for len(q.tiers[level]) > 0 {
			batch := q.tiers[level]
			q.tiers[level] = nil
			for _, req := range batch {
				process(req)
			}
		}
	}
}

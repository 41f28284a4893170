package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pomanager/po-admin/internal/service/models/orderitem"
)

// State tags a line item within an edit session. An item is New iff it has no
// backend id and Existing iff it has one; the tag is reassigned only by a
// successful create during Commit.
type State string

const (
	StateNew      State = "new"
	StateExisting State = "existing"
)

// Ref is a synthetic per-item key, distinct from the backend id, stable
// across insertions and removals within one edit session.
type Ref int64

var (
	ErrUnknownRef        = errors.New("unknown item reference")
	ErrOrderNotPersisted = errors.New("owning order has no persisted id")
)

// Writer issues the per-item backend operations during Commit.
type Writer interface {
	Create(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error)
	Update(ctx context.Context, item orderitem.LineItem) (orderitem.LineItem, error)
}

// Patch carries a partial edit of one item. Nil fields are left untouched.
type Patch struct {
	Name     *string
	Quantity *decimal.Decimal
	Unit     *string
}

// Item is a read-only view of one collection entry.
type Item struct {
	Ref   Ref                `json:"ref"`
	State State              `json:"state"`
	Line  orderitem.LineItem `json:"line"`
}

type entry struct {
	ref   Ref
	state State
	line  orderitem.LineItem
}

// Collection governs the lifecycle of the line items attached to one order
// during an edit session: a possibly mixed set of persisted and not-yet
// persisted items, locally edited, reconciled against the backend on Commit.
// Collection is not safe for concurrent use; each form owns exactly one.
type Collection struct {
	nextRef Ref
	entries []*entry
}

func NewCollection() *Collection {
	return &Collection{}
}

// Seed initializes the collection from backend records. Every seeded item
// starts Existing; any previous content is discarded.
func (c *Collection) Seed(records []orderitem.LineItem) {
	c.entries = c.entries[:0]
	for _, rec := range records {
		c.nextRef++
		c.entries = append(c.entries, &entry{ref: c.nextRef, state: StateExisting, line: rec})
	}
}

// Add appends a fresh item with empty field values in state New and returns
// its local reference.
func (c *Collection) Add() Ref {
	c.nextRef++
	c.entries = append(c.entries, &entry{ref: c.nextRef, state: StateNew})

	return c.nextRef
}

// Edit applies a partial update to one item. The state tag is unchanged.
func (c *Collection) Edit(ref Ref, patch Patch) error {
	e := c.lookup(ref)
	if e == nil {
		return fmt.Errorf("edit %d: %w", ref, ErrUnknownRef)
	}

	if patch.Name != nil {
		e.line.Name = *patch.Name
	}
	if patch.Quantity != nil {
		e.line.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		e.line.Unit = *patch.Unit
	}

	return nil
}

// Remove deletes the item from the local collection outright. No backend
// delete is ever issued for it; a removed persisted item is simply absent
// from the next Commit's operation set.
func (c *Collection) Remove(ref Ref) error {
	for i, e := range c.entries {
		if e.ref == ref {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("remove %d: %w", ref, ErrUnknownRef)
}

// Items returns the collection in insertion order.
func (c *Collection) Items() []Item {
	items := make([]Item, len(c.entries))
	for i, e := range c.entries {
		items[i] = Item{Ref: e.ref, State: e.state, Line: e.line}
	}

	return items
}

// Len returns the number of items currently in the collection.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Lines returns copies of the underlying line items in insertion order.
func (c *Collection) Lines() []orderitem.LineItem {
	lines := make([]orderitem.LineItem, len(c.entries))
	for i, e := range c.entries {
		lines[i] = e.line
	}

	return lines
}

func (c *Collection) lookup(ref Ref) *entry {
	for _, e := range c.entries {
		if e.ref == ref {
			return e
		}
	}

	return nil
}

// ItemResult records the outcome of one item write during Commit.
type ItemResult struct {
	Ref   Ref
	State State
	Err   error
}

// Report aggregates the per-item outcomes of one Commit.
type Report struct {
	Results []ItemResult
	Created int
	Updated int
}

// Failed returns the results of items whose write failed.
func (r *Report) Failed() []ItemResult {
	var failed []ItemResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}

	return failed
}

// CommitError reports a partially failed Commit as a single error while
// keeping the per-item breakdown available to the caller.
type CommitError struct {
	Report *Report
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit: %d of %d item writes failed",
		len(e.Report.Failed()), len(e.Report.Results))
}

// commitConcurrency bounds the number of in-flight item writes.
const commitConcurrency = 4

// Commit reconciles the collection against the backend: one create per New
// item bound to orderID, one update per Existing item. Writes are issued
// concurrently (there is no ordering dependency between distinct items) and
// all awaited. Successful creates transition their item to Existing with the
// returned id. When any write fails the remaining writes still run and the
// aggregate is reported as a single CommitError; no rollback is attempted.
func (c *Collection) Commit(ctx context.Context, orderID int64, w Writer) (*Report, error) {
	if orderID == 0 {
		return nil, ErrOrderNotPersisted
	}

	report := &Report{Results: make([]ItemResult, len(c.entries))}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(commitConcurrency)

	for i, e := range c.entries {
		i, e := i, e
		g.Go(func() error {
			line := e.line
			line.OrderID = &orderID

			var written orderitem.LineItem
			var err error
			if e.state == StateNew {
				written, err = w.Create(ctx, line)
			} else {
				written, err = w.Update(ctx, line)
			}

			mu.Lock()
			defer mu.Unlock()

			report.Results[i] = ItemResult{Ref: e.ref, State: e.state, Err: err}
			if err != nil {
				return err
			}

			if e.state == StateNew {
				report.Created++
			} else {
				report.Updated++
			}
			e.state = StateExisting
			e.line = written

			return nil
		})
	}

	// The first error is discarded in favor of the aggregate report.
	_ = g.Wait()

	if len(report.Failed()) > 0 {
		return report, &CommitError{Report: report}
	}

	return report, nil
}

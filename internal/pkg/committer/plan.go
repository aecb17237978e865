// Package committer applies batches of Spanner mutations atomically.
//
// Repositories build mutations without applying them. A caller collects
// the mutations for one unit of work into a CommitPlan and hands the plan
// to a Committer, which writes them in a single Spanner commit:
//
//	plan := committer.NewPlan()
//	plan.Add(calculations.InsertMut(calc))
//	plan.Add(outbox.InsertMut(outbox.EnrichEvent(calc.Event(), payload)))
//	return c.Apply(ctx, plan)
//
// Either every mutation in the plan lands or none does.
package committer

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
)

// CommitPlan collects the mutations of one unit of work.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends a mutation. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple appends several mutations.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier is the part of *spanner.Client a Committer needs.
type Applier interface {
	Apply(ctx context.Context, ms []*spanner.Mutation, opts ...spanner.ApplyOption) (time.Time, error)
}

// Committer writes CommitPlans.
type Committer struct {
	client Applier
}

// NewCommitter creates a Committer over a Spanner client.
func NewCommitter(client Applier) *Committer {
	return &Committer{client: client}
}

// Apply commits every mutation of the plan in one transaction. An empty
// plan is a no-op.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

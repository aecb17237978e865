package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rebate-service/internal/pkg/clock"
	"github.com/light-bringer/rebate-service/internal/pkg/committer"
)

// Store is the Spanner backend: product and rebate repositories sharing
// one client and committer. It satisfies ProductStore, RebateStore and
// CatalogWriter.
type Store struct {
	*ProductRepo
	*RebateRepo
	Outbox *OutboxRepo
}

// NewStore wires the Spanner repositories.
func NewStore(client *spanner.Client, clk clock.Clock) *Store {
	c := committer.NewCommitter(client)
	outbox := NewOutboxRepo(client)
	return &Store{
		ProductRepo: NewProductRepo(client, c),
		RebateRepo:  NewRebateRepo(client, c, outbox, clk),
		Outbox:      outbox,
	}
}

package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rebate-service/internal/models/m_rebate"
)

// InsertRawRebate writes a rebate row as-is, bypassing domain validation,
// so tests can plant inconsistent data.
func InsertRawRebate(t *testing.T, client *spanner.Client, data *m_rebate.Data) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_rebate.NewModel().UpsertMut(data)})
	require.NoError(t, err, "failed to insert rebate row")
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract verifies that a ReportStore implementation behaves
// as the port requires. Adapters call it from their own tests.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()

	newReport := func() *domain.Report {
		return domain.NewReport("contract.txt", []domain.Result{
			{Input: "0", Verdict: domain.Accept, Reason: domain.ReasonAcceptState, Steps: 1, FinalState: 1},
			{Input: "", Verdict: domain.Reject, Reason: domain.ReasonNoTransition},
		})
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport()
		require.NoError(t, store.Save(ctx, report), "Save should not return error")

		loaded, err := store.Load(ctx, report.ID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Source, loaded.Source)
		assert.Equal(t, report.Results, loaded.Results)
		assert.WithinDuration(t, report.CreatedAt, loaded.CreatedAt, time.Second)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-report")
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		report := newReport()
		require.NoError(t, store.Save(ctx, report))
		report.Results = report.Results[:1]
		require.NoError(t, store.Save(ctx, report))

		loaded, err := store.Load(ctx, report.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Results, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		report := newReport()
		require.NoError(t, store.Save(ctx, report))

		require.NoError(t, store.Delete(ctx, report.ID), "Delete should not return error")

		_, err := store.Load(ctx, report.ID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, report.ID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		r1, r2 := newReport(), newReport()
		require.NoError(t, store.Save(ctx, r1))
		require.NoError(t, store.Save(ctx, r2))
		defer func() {
			_ = store.Delete(ctx, r1.ID)
			_ = store.Delete(ctx, r2.ID)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, r1.ID)
		assert.Contains(t, ids, r2.ID)
	})
}

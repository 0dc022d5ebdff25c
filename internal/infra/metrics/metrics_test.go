package metrics

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/accres/internal/accession"
	"github.com/John-Robertt/accres/internal/domain"
)

func newRequest(t *testing.T, acc string) domain.Request {
	t.Helper()
	db := "swissprot"
	req, err := domain.NewRequest(&acc, nil, &db, false)
	require.NoError(t, err)
	return req
}

func TestRecorder_CountsOutcomes(t *testing.T) {
	rec := NewRecorder()
	r := accession.NewResolver(accession.DefaultOptions(), rec)

	db := "swissprot"
	for _, in := range []string{"sp|P12345|BLA_HUMAN", "P67890", "AB12", "REV_P12345"} {
		req, err := domain.NewRequest(&in, nil, &db, false)
		require.NoError(t, err)
		r.Resolve(context.Background(), req)
	}

	require.Equal(t, 2.0, testutil.ToFloat64(rec.total.WithLabelValues(OutcomeValid, StageNone)))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.total.WithLabelValues(OutcomeInvalid, string(domain.StageLength))))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.total.WithLabelValues(OutcomeInvalid, string(domain.StageBlacklist))))
	require.Equal(t, 0.0, testutil.ToFloat64(rec.total.WithLabelValues(OutcomeInvalid, string(domain.StageFamily))))
}

func TestRecorder_OnlyRejectingStagesPreinitialized(t *testing.T) {
	rec := NewRecorder()
	// valid + blacklist/header/family/length
	require.Equal(t, 5, testutil.CollectAndCount(rec.total))

	var buf bytes.Buffer
	require.NoError(t, rec.WriteText(&buf))
	require.Contains(t, buf.String(), `stage="family"`)
	require.NotContains(t, buf.String(), `stage="pipe"`)
	require.NotContains(t, buf.String(), `stage="quote"`)
	require.NotContains(t, buf.String(), `stage="version"`)
}

func TestRecorder_WriteText(t *testing.T) {
	rec := NewRecorder()
	req := newRequest(t, "P12345")
	rec.OnResolved(req, domain.Result{Accession: "P12345", Valid: true}, 0)

	var buf bytes.Buffer
	require.NoError(t, rec.WriteText(&buf))
	require.Contains(t, buf.String(), `accres_resolutions_total{outcome="valid",stage="none"} 1`)
	require.Contains(t, buf.String(), "accres_resolution_duration_seconds_count 1")
}

func TestRecorder_Independent(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	req := newRequest(t, "P12345")
	a.OnResolved(req, domain.Result{Valid: true}, 0)

	require.Equal(t, 0.0, testutil.ToFloat64(b.total.WithLabelValues(OutcomeValid, StageNone)))
	require.NotSame(t, a.Registry(), b.Registry())
}

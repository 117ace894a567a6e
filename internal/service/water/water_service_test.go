// internal/service/water/water_service_test.go
package water

import (
	"context"
	"testing"
	"time"

	"aquafarm-service/internal/domain/water"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWaterRepo struct {
	readings []*water.Reading
}

func (r *fakeWaterRepo) Create(ctx context.Context, reading *water.Reading) error {
	reading.ID = int64(len(r.readings) + 1)
	r.readings = append(r.readings, reading)
	return nil
}

func (r *fakeWaterRepo) ListByPond(ctx context.Context, pondID int64, limit int) ([]*water.Reading, error) {
	var out []*water.Reading
	for _, reading := range r.readings {
		if reading.PondID == pondID {
			out = append(out, reading)
		}
	}
	return out, nil
}

func (r *fakeWaterRepo) ListFlagged(ctx context.Context, userID int64, params []string) ([]*water.Reading, error) {
	var out []*water.Reading
	for _, reading := range r.readings {
		if reading.UserID != userID {
			continue
		}
		for _, flag := range reading.Flags {
			for _, p := range params {
				if flag == p {
					out = append(out, reading)
				}
			}
		}
	}
	return out, nil
}

func reading(ph, temp, do, ammonia float64) *water.CreateReadingRequest {
	return &water.CreateReadingRequest{
		PondID:          3,
		PH:              ph,
		TempC:           temp,
		DissolvedOxygen: do,
		Ammonia:         ammonia,
		RecordedAt:      time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
	}
}

func TestRecordHealthyReadingHasNoFlags(t *testing.T) {
	svc := NewService(&fakeWaterRepo{}, zap.NewNop())

	r, err := svc.Record(context.Background(), 7, reading(7.2, 28, 6, 0.1))
	require.NoError(t, err)

	assert.Empty(t, r.Flags)
}

func TestRecordFlagsOutOfRangeParameters(t *testing.T) {
	svc := NewService(&fakeWaterRepo{}, zap.NewNop())

	r, err := svc.Record(context.Background(), 7, reading(5.8, 35, 3.2, 0.9))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"ph", "temp_c", "dissolved_oxygen", "ammonia"}, r.Flags)
}

func TestRecordFlagsBoundaryValues(t *testing.T) {
	svc := NewService(&fakeWaterRepo{}, zap.NewNop())

	// Boundary values are inside the safe range.
	r, err := svc.Record(context.Background(), 7, reading(6.5, 32, 4, 0.5))
	require.NoError(t, err)

	assert.Empty(t, r.Flags)
}

func TestListFlaggedFiltersByParameter(t *testing.T) {
	repo := &fakeWaterRepo{}
	svc := NewService(repo, zap.NewNop())

	_, err := svc.Record(context.Background(), 7, reading(5.8, 28, 6, 0.1))
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), 7, reading(7.2, 28, 6, 0.9))
	require.NoError(t, err)

	flagged, err := svc.ListFlagged(context.Background(), 7, []string{"ammonia"})
	require.NoError(t, err)

	require.Len(t, flagged, 1)
	assert.Contains(t, flagged[0].Flags, "ammonia")
}

// internal/service/water/water_service.go
package water

import (
	"context"

	"aquafarm-service/internal/domain/water"

	"go.uber.org/zap"
)

// Safe ranges for pond aquaculture; readings outside them get flagged.
const (
	minPH        = 6.5
	maxPH        = 8.5
	minTempC     = 24.0
	maxTempC     = 32.0
	minDissolved = 4.0
	maxAmmonia   = 0.5
)

type Service struct {
	repo   water.Repository
	logger *zap.Logger
}

func NewService(repo water.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record stores a reading, flagging any parameter outside its safe range.
func (s *Service) Record(ctx context.Context, userID int64, req *water.CreateReadingRequest) (*water.Reading, error) {
	reading := &water.Reading{
		UserID:          userID,
		PondID:          req.PondID,
		PH:              req.PH,
		TempC:           req.TempC,
		DissolvedOxygen: req.DissolvedOxygen,
		Ammonia:         req.Ammonia,
		Flags:           flagsFor(req),
		RecordedAt:      req.RecordedAt,
	}

	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, err
	}

	if len(reading.Flags) > 0 {
		s.logger.Warn("water reading out of range",
			zap.Int64("pond_id", reading.PondID),
			zap.Strings("flags", reading.Flags))
	}

	return reading, nil
}

func flagsFor(req *water.CreateReadingRequest) []string {
	var flags []string
	if req.PH < minPH || req.PH > maxPH {
		flags = append(flags, "ph")
	}
	if req.TempC < minTempC || req.TempC > maxTempC {
		flags = append(flags, "temp_c")
	}
	if req.DissolvedOxygen < minDissolved {
		flags = append(flags, "dissolved_oxygen")
	}
	if req.Ammonia > maxAmmonia {
		flags = append(flags, "ammonia")
	}
	return flags
}

func (s *Service) ListByPond(ctx context.Context, pondID int64, limit int) ([]*water.Reading, error) {
	return s.repo.ListByPond(ctx, pondID, limit)
}

func (s *Service) ListFlagged(ctx context.Context, userID int64, params []string) ([]*water.Reading, error) {
	return s.repo.ListFlagged(ctx, userID, params)
}

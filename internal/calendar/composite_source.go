package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeSource implements HolidaySource with a fallback strategy
// Primary: GovUKSource (API)
// Fallback: FileSource (local mirror, explicitly configured)
type CompositeSource struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback HolidaySource, logger *zap.Logger) *CompositeSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch tries the primary source, then the fallback
func (cs *CompositeSource) Fetch() (Dataset, error) {
	dataset, err := cs.primary.Fetch()
	if err == nil {
		return dataset, nil
	}

	cs.logger.Warn("Primary holiday source failed, falling back to mirror",
		zap.Error(err))

	dataset, fallbackErr := cs.fallback.Fetch()
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%w", err, fallbackErr)
	}

	return dataset, nil
}

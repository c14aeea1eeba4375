package calendar

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// FileSource implements HolidaySource using a local copy of bank-holidays.json
type FileSource struct {
	filePath string
	logger   *zap.Logger
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileSource{
		filePath: filePath,
		logger:   logger,
	}
}

// Fetch reads and decodes the file on every call
func (fs *FileSource) Fetch() (Dataset, error) {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read holiday file: %w", ErrSourceUnavailable, err)
	}

	dataset, err := decodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.filePath, err)
	}

	fs.logger.Info("Holiday file loaded",
		zap.String("file", fs.filePath),
		zap.Int("divisions", len(dataset)))

	return dataset, nil
}

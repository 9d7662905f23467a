package convert

import (
	"github.com/tunetap/tunetap/internal/model"
)

// Converter defines the interface for the audio conversion service.
type Converter interface {
	SetUpdateCallback(func(*model.ConversionTask))
	StartConversion(inputPath, format string) (*model.ConversionTask, error)
	StopConversion(taskID string) error
	GetTask(taskID string) (*model.ConversionTask, bool)
}

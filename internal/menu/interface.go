package menu

import (
	"context"

	"MenuImage_API/internal/models"
)

// Analyzer defines the interface for the menu-photo extraction collaborator.
// External packages should use this interface, not the concrete implementations
type Analyzer interface {
	// AnalyzeImage extracts menu items from a photographed menu. The
	// returned items are already passed through ValidateMenuItems.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]models.MenuItem, error)
}

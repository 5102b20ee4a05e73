// Package reports provides the repository for abuse reports. Reports
// reference items by type and numeric id only; the target is never
// validated and may not exist.
package reports

import (
	"context"

	"github.com/chemhub/chemforum/internal/server/models"
)

type Repository interface {
	// Create inserts a new unresolved report and fills in ID, CreatedAt.
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
}

// ABOUTME: Repository interface for saved nutrition plans.
// ABOUTME: Defines the plan CRUD contract and shared ID resolution helpers.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/nutriplan/internal/models"
)

// Sentinel errors for ID resolution.
var (
	ErrNotFound        = errors.New("not found")
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")
	ErrAlreadyExists   = errors.New("already exists")
)

// Repository defines the storage interface for plans.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Plan operations
	CreatePlan(p *models.Plan) error
	GetPlan(idOrPrefix string) (*models.Plan, error)
	ListPlans(fitnessGoal *string, limit int) ([]*models.Plan, error)
	DeletePlan(idOrPrefix string) error
	GetLatestPlan() (*models.Plan, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// isFullUUID reports whether s is a full canonical UUID string.
func isFullUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// normalizePrefix lowercases an ID or ID prefix and rejects anything other
// than hex digits and dashes, so no backend sees pattern characters.
func normalizePrefix(idOrPrefix string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if s == "" || len(s) > 36 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
	}
	return s, nil
}

// errDuplicate is returned when creating a plan whose ID is already stored.
func errDuplicate(id uuid.UUID) error {
	return fmt.Errorf("%w: plan %s", ErrAlreadyExists, id)
}

// pickMatch returns the single match for idOrPrefix or a not found or
// ambiguous prefix error.
func pickMatch(matches []string, idOrPrefix string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idOrPrefix)
	}
}

// errNoPlans is returned by GetLatestPlan on an empty store.
func errNoPlans() error {
	return fmt.Errorf("%w: no plans saved", ErrNotFound)
}

// ABOUTME: Data migration between plan storage backends.
// ABOUTME: Copies every plan from source to destination in creation order.

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary counts what a migration did.
type MigrateSummary struct {
	Plans   int
	Skipped int
}

// MigrateData copies every plan from src to dst, oldest first. Plans whose
// ID already exists in dst are skipped and counted.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	plans, err := src.ListPlans(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source plans: %w", err)
	}

	summary := &MigrateSummary{}
	for i := len(plans) - 1; i >= 0; i-- {
		p := plans[i]

		_, err := dst.GetPlan(p.ID.String())
		switch {
		case err == nil:
			summary.Skipped++
			continue
		case !errors.Is(err, ErrNotFound):
			return summary, fmt.Errorf("check plan %s: %w", p.ID, err)
		}

		if err := dst.CreatePlan(p); err != nil {
			return summary, fmt.Errorf("create plan %s: %w", p.ID, err)
		}
		summary.Plans++
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

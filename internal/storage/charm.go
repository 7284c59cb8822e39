// ABOUTME: CharmStore keeps plans in a Charm KV database with cloud sync.
// ABOUTME: Each plan is stored as JSON under a plan:<uuid> key.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/nutriplan/internal/models"
)

const (
	// CharmDBName is the KV database name used on the Charm server.
	CharmDBName = "nutriplan"

	planKeyPrefix = "plan:"
)

var errCharmReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// kvStore is the subset of *kv.KV used by CharmStore.
type kvStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	IsReadOnly() bool
	Close() error
}

// CharmStore provides Charm KV storage for plans.
type CharmStore struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

var _ Repository = (*CharmStore)(nil)

// OpenCharm opens the named Charm KV database against host and pulls remote
// data unless another process holds the lock.
func OpenCharm(host, name string) (*CharmStore, error) {
	if host != "" {
		if err := os.Setenv("CHARM_HOST", host); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}

	db, err := kv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv %s: %w", name, err)
	}

	s := newCharmStore(db)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return s, nil
}

func newCharmStore(db kvStore) *CharmStore {
	return &CharmStore{kv: db, autoSync: true}
}

// SetAutoSync enables or disables syncing after every write.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// IsReadOnly reports whether another process holds the database lock.
func (s *CharmStore) IsReadOnly() bool {
	return s.kv.IsReadOnly()
}

// Sync synchronizes local state with the Charm server.
func (s *CharmStore) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

func planKey(id string) []byte {
	return []byte(planKeyPrefix + id)
}

// getPlanLocked reads one plan by full ID. Callers hold s.mu.
func (s *CharmStore) getPlanLocked(id string) (*models.Plan, error) {
	val, err := s.kv.Get(planKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}
	var p models.Plan
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return &p, nil
}

// resolveKeyLocked maps an ID or prefix to a full plan ID. Callers hold s.mu.
func (s *CharmStore) resolveKeyLocked(idOrPrefix string) (string, error) {
	prefix, err := normalizePrefix(idOrPrefix)
	if err != nil {
		return "", err
	}
	if isFullUUID(prefix) {
		return prefix, nil
	}

	keys, err := s.kv.Keys()
	if err != nil {
		return "", fmt.Errorf("list keys: %w", err)
	}
	search := planKey(prefix)
	var matches []string
	for _, key := range keys {
		if bytes.HasPrefix(key, search) {
			matches = append(matches, string(key[len(planKeyPrefix):]))
		}
	}
	return pickMatch(matches, idOrPrefix)
}

// putPlanLocked writes p unless its key already exists. Callers hold s.mu.
func (s *CharmStore) putPlanLocked(p *models.Plan) error {
	id := p.ID.String()
	if _, err := s.getPlanLocked(id); err == nil {
		return errDuplicate(p.ID)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return s.kv.Set(planKey(id), data)
}

// --- Repository interface methods ---

// CreatePlan stores a new plan.
func (s *CharmStore) CreatePlan(p *models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return errCharmReadOnly
	}
	if err := s.putPlanLocked(p); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	s.syncIfEnabled()
	return nil
}

// GetPlan retrieves a plan by ID or ID prefix.
func (s *CharmStore) GetPlan(idOrPrefix string) (*models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, err := s.resolveKeyLocked(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.getPlanLocked(id)
}

// ListPlans retrieves plans with optional filtering by fitness goal.
// Results are sorted by CreatedAt descending (most recent first).
func (s *CharmStore) ListPlans(fitnessGoal *string, limit int) ([]*models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	prefix := []byte(planKeyPrefix)
	var plans []*models.Plan
	for _, key := range keys {
		if !bytes.HasPrefix(key, prefix) {
			continue
		}
		p, err := s.getPlanLocked(string(key[len(prefix):]))
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		if fitnessGoal != nil && p.Profile.FitnessGoal != *fitnessGoal {
			continue
		}
		plans = append(plans, p)
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
	if limit > 0 && len(plans) > limit {
		plans = plans[:limit]
	}
	return plans, nil
}

// DeletePlan removes a plan by ID or prefix.
func (s *CharmStore) DeletePlan(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return errCharmReadOnly
	}
	id, err := s.resolveKeyLocked(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if _, err := s.getPlanLocked(id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if err := s.kv.Delete(planKey(id)); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	s.syncIfEnabled()
	return nil
}

// GetLatestPlan returns the most recently created plan.
func (s *CharmStore) GetLatestPlan() (*models.Plan, error) {
	plans, err := s.ListPlans(nil, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, errNoPlans()
	}
	return plans[0], nil
}

// GetAllData retrieves all plans for export.
func (s *CharmStore) GetAllData() (*ExportData, error) {
	plans, err := s.ListPlans(nil, 0)
	if err != nil {
		return nil, err
	}
	return newExportData(plans), nil
}

// ImportData stores every plan in data and syncs once at the end. Stored IDs
// are checked up front so a duplicate writes nothing.
func (s *CharmStore) ImportData(data *ExportData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return errCharmReadOnly
	}
	for _, p := range data.Plans {
		if _, err := s.getPlanLocked(p.ID.String()); err == nil {
			return fmt.Errorf("import plan: %w", errDuplicate(p.ID))
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
	}
	for _, p := range data.Plans {
		if err := s.putPlanLocked(p); err != nil {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
	}
	s.syncIfEnabled()
	return nil
}

// Close closes the KV database.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Close()
}

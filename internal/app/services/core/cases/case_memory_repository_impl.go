package cases

import (
	"context"
	"errors"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/exceptions"
	"sort"
	"sync"
	"time"
)

var errCaseMissing = errors.New("case does not exist")

// caseMemoryRepository keeps cases in process memory. Writes to one case
// are serialised by that case's mutex; draft creation for one email is
// serialised by the email's mutex, taken before any case mutex.
type caseMemoryRepository struct {
	mu         sync.RWMutex
	cases      map[string]*models.Case
	caseLocks  sync.Map
	emailLocks sync.Map
}

func NewCaseMemoryRepository() contracts.CaseRepository {
	return &caseMemoryRepository{
		cases: make(map[string]*models.Case),
	}
}

func lockFor(locks *sync.Map, key string) *sync.Mutex {
	lock, _ := locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (r *caseMemoryRepository) load(caseID string) *models.Case {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cases[caseID].Clone()
}

func (r *caseMemoryRepository) store(c *models.Case) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases[c.ID] = c.Clone()
}

func (r *caseMemoryRepository) latest(match func(c *models.Case) bool) *models.Case {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Case
	for _, c := range r.cases {
		if !match(c) {
			continue
		}
		if found == nil || c.CreatedAt.After(found.CreatedAt) {
			found = c
		}
	}
	return found.Clone()
}

func (r *caseMemoryRepository) CreateOrReuseDraft(ctx context.Context, email string, fn contracts.CaseMutation) (*models.Case, bool, error) {
	email = models.NormalizeEmail(email)
	emailLock := lockFor(&r.emailLocks, email)
	emailLock.Lock()
	defer emailLock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	current := r.latest(func(c *models.Case) bool { return c.IsOwnedBy(email) && c.IsUnpaidDraft() })
	if current != nil {
		caseLock := lockFor(&r.caseLocks, current.ID)
		caseLock.Lock()
		defer caseLock.Unlock()

		// An admin may have confirmed stage 1 before the case lock was taken.
		current = r.load(current.ID)
		if !current.IsUnpaidDraft() {
			current = nil
		}
	}

	next, err := fn(current)
	if err != nil {
		return nil, false, err
	}

	created := current == nil || current.ID != next.ID
	r.store(next)
	return next.Clone(), created, nil
}

func (r *caseMemoryRepository) exists(caseID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cases[caseID]
	return ok
}

// ApplyTransition only allocates a case mutex for stored cases. Cases are
// never deleted, so a case seen here is still present once the lock is held.
func (r *caseMemoryRepository) ApplyTransition(ctx context.Context, caseID string, fn contracts.CaseMutation) (*models.Case, error) {
	if !r.exists(caseID) {
		return nil, exceptions.ErrCaseNotFound(errCaseMissing, caseID)
	}

	caseLock := lockFor(&r.caseLocks, caseID)
	caseLock.Lock()
	defer caseLock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := r.load(caseID)
	if current == nil {
		return nil, exceptions.ErrCaseNotFound(errCaseMissing, caseID)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	r.store(next)
	return next.Clone(), nil
}

func (r *caseMemoryRepository) FindByID(ctx context.Context, caseID string) (*models.Case, error) {
	return r.load(caseID), nil
}

func (r *caseMemoryRepository) FindLatestUnpaidDraft(ctx context.Context, email string) (*models.Case, error) {
	return r.latest(func(c *models.Case) bool { return c.IsOwnedBy(email) && c.IsUnpaidDraft() }), nil
}

func (r *caseMemoryRepository) FindLatestByEmail(ctx context.Context, email string) (*models.Case, error) {
	return r.latest(func(c *models.Case) bool { return c.IsOwnedBy(email) }), nil
}

func (r *caseMemoryRepository) FindAll(ctx context.Context) ([]models.Case, error) {
	return r.filterSorted(func(c *models.Case) bool { return true }, func(a, b *models.Case) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

func (r *caseMemoryRepository) FindAuthorizedBefore(ctx context.Context, cutoff time.Time) ([]models.Case, error) {
	return r.filterSorted(func(c *models.Case) bool {
		return c.Stage2Status == models.Stage2Authorized && c.Stage2AuthorizedAt != nil && c.Stage2AuthorizedAt.Before(cutoff)
	}, func(a, b *models.Case) bool {
		return a.Stage2AuthorizedAt.Before(*b.Stage2AuthorizedAt)
	}), nil
}

func (r *caseMemoryRepository) filterSorted(match func(c *models.Case) bool, less func(a, b *models.Case) bool) []models.Case {
	r.mu.RLock()
	selected := make([]*models.Case, 0, len(r.cases))
	for _, c := range r.cases {
		if match(c) {
			selected = append(selected, c.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(selected, func(i, j int) bool { return less(selected[i], selected[j]) })

	result := make([]models.Case, len(selected))
	for i, c := range selected {
		result[i] = *c
	}
	return result
}

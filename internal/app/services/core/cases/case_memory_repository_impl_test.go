package cases

import (
	"context"
	"errors"
	"fmt"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/exceptions"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdmin = models.AdminActor("admin-1", "ops@medtour.test")

func createDraft(t *testing.T, repo *caseMemoryRepository, engine *stages.Engine, email string) *models.Case {
	t.Helper()
	saved, created, err := repo.CreateOrReuseDraft(context.Background(), email, func(current *models.Case) (*models.Case, error) {
		return engine.Apply(current, stages.CreateDraft{UserEmail: email, Symptoms: "fever"}, models.AnonymousPatient())
	})
	require.NoError(t, err)
	require.True(t, created)
	return saved
}

func TestCaseMemoryRepository_ApplyTransition(t *testing.T) {
	repo := NewCaseMemoryRepository().(*caseMemoryRepository)
	engine := stages.NewEngine(stages.DefaultPricing())
	ctx := context.Background()

	t.Run("Unknown case", func(t *testing.T) {
		_, err := repo.ApplyTransition(ctx, "missing", func(current *models.Case) (*models.Case, error) {
			t.Fatal("mutation must not run for a missing case")
			return nil, nil
		})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("Unknown ids leave no lock behind", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			_, err := repo.ApplyTransition(ctx, fmt.Sprintf("missing-%d", i), func(current *models.Case) (*models.Case, error) {
				return current, nil
			})
			require.Error(t, err)
		}
		locks := 0
		repo.caseLocks.Range(func(key, value any) bool {
			locks++
			return true
		})
		assert.Zero(t, locks)
	})

	t.Run("Rejected mutation leaves case untouched", func(t *testing.T) {
		draft := createDraft(t, repo, engine, "reject@x.com")
		_, err := repo.ApplyTransition(ctx, draft.ID, func(current *models.Case) (*models.Case, error) {
			return engine.Apply(current, stages.CaptureStage2{}, testAdmin)
		})
		require.Error(t, err)

		stored, err := repo.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft, stored)
	})

	t.Run("Stored case is isolated from callers", func(t *testing.T) {
		draft := createDraft(t, repo, engine, "isolated@x.com")
		draft.Symptoms = "changed by caller"

		stored, err := repo.FindByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "fever", stored.Symptoms)
	})
}

func TestCaseMemoryRepository_ConcurrentCapture(t *testing.T) {
	repo := NewCaseMemoryRepository().(*caseMemoryRepository)
	engine := stages.NewEngine(stages.DefaultPricing())
	ctx := context.Background()

	draft := createDraft(t, repo, engine, "race@x.com")
	for _, transition := range []stages.Transition{stages.ConfirmStage1{}, stages.ConfirmStage2{AuthID: "AUTH1"}} {
		_, err := repo.ApplyTransition(ctx, draft.ID, func(current *models.Case) (*models.Case, error) {
			return engine.Apply(current, transition, testAdmin)
		})
		require.NoError(t, err)
	}

	var succeeded, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ApplyTransition(ctx, draft.ID, func(current *models.Case) (*models.Case, error) {
				return engine.Apply(current, stages.CaptureStage2{}, testAdmin)
			})
			var guardErr *exceptions.GuardRejectedError
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.As(err, &guardErr):
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(15), rejected)
}

func TestCaseMemoryRepository_OneDraftPerEmail(t *testing.T) {
	repo := NewCaseMemoryRepository().(*caseMemoryRepository)
	engine := stages.NewEngine(stages.DefaultPricing())
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 10)
	for i := 0; i < len(ids); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, _, err := repo.CreateOrReuseDraft(ctx, "Same@X.com", func(current *models.Case) (*models.Case, error) {
				if current != nil {
					return engine.Apply(current, stages.UpdateDraft{Symptoms: fmt.Sprintf("attempt %d", i)}, models.AnonymousPatient())
				}
				return engine.Apply(nil, stages.CreateDraft{UserEmail: "same@x.com"}, models.AnonymousPatient())
			})
			if assert.NoError(t, err) {
				ids[i] = saved.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCaseMemoryRepository_Queries(t *testing.T) {
	repo := NewCaseMemoryRepository().(*caseMemoryRepository)
	engine := stages.NewEngine(stages.DefaultPricing())
	ctx := context.Background()

	first := createDraft(t, repo, engine, "query@x.com")
	paid, err := repo.ApplyTransition(ctx, first.ID, func(current *models.Case) (*models.Case, error) {
		return engine.Apply(current, stages.ConfirmStage1{}, testAdmin)
	})
	require.NoError(t, err)

	draft, err := repo.FindLatestUnpaidDraft(ctx, "QUERY@x.com")
	require.NoError(t, err)
	assert.Nil(t, draft)

	latest, err := repo.FindLatestByEmail(ctx, "query@x.com")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, paid.ID, latest.ID)

	authorized, err := repo.ApplyTransition(ctx, first.ID, func(current *models.Case) (*models.Case, error) {
		return engine.Apply(current, stages.ConfirmStage2{AuthID: "AUTH1"}, testAdmin)
	})
	require.NoError(t, err)

	stale, err := repo.FindAuthorizedBefore(ctx, authorized.Stage2AuthorizedAt.Add(1))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, first.ID, stale[0].ID)

	stale, err = repo.FindAuthorizedBefore(ctx, *authorized.Stage2AuthorizedAt)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

package caseEvents

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"sync"
)

type caseEventMemoryRepository struct {
	mu     sync.RWMutex
	events []models.CaseEvent
}

func NewCaseEventMemoryRepository() contracts.CaseEventRepository {
	return &caseEventMemoryRepository{}
}

func (r *caseEventMemoryRepository) Insert(ctx context.Context, event *models.CaseEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *caseEventMemoryRepository) FindByCaseID(ctx context.Context, caseID string) ([]models.CaseEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := []models.CaseEvent{}
	for _, event := range r.events {
		if event.CaseID == caseID {
			events = append(events, event)
		}
	}
	return events, nil
}

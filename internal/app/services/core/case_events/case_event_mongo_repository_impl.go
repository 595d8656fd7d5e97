package caseEvents

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type caseEventMongoRepository struct {
	Collection *mongo.Collection
}

func NewCaseEventMongoRepository(db *mongo.Database) contracts.CaseEventRepository {
	return &caseEventMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionCaseEvents),
	}
}

func (r *caseEventMongoRepository) Insert(ctx context.Context, event *models.CaseEvent) error {
	_, err := r.Collection.InsertOne(ctx, event)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *caseEventMongoRepository) FindByCaseID(ctx context.Context, caseID string) ([]models.CaseEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"case_id": caseID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	events := []models.CaseEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return events, nil
}

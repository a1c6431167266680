package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/avelisk/remindd/pkg/models"
)

// FirestoreStore is the production EventStore backed by a Cloud Firestore
// collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore builds a Firestore client from a service-account key
// file. Pass firestore.DetectProjectID as projectID to take the project
// from the credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile, collection string) (*FirestoreStore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreStore{client: client, collection: collection}, nil
}

// Close releases the underlying client connection.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) Add(ctx context.Context, ev models.Event) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, ev)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) ListAll(ctx context.Context) ([]models.StoredEvent, error) {
	return s.collect(s.client.Collection(s.collection).Documents(ctx))
}

func (s *FirestoreStore) ListByCreator(ctx context.Context, createdBy string) ([]models.StoredEvent, error) {
	query := s.client.Collection(s.collection).Where("createdBy", "==", createdBy)
	return s.collect(query.Documents(ctx))
}

func (s *FirestoreStore) collect(iter *firestore.DocumentIterator) ([]models.StoredEvent, error) {
	defer iter.Stop()
	events := []models.StoredEvent{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		var ev models.Event
		if err := doc.DataTo(&ev); err != nil {
			return nil, err
		}
		events = append(events, models.StoredEvent{ID: doc.Ref.ID, Event: ev})
	}
}

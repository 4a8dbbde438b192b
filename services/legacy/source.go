package legacy

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Document is one legacy document. Path is relative to the database root, for
// example "checkins/abc/payments/xyz".
type Document struct {
	ID   string
	Path string
	Data map[string]interface{}
}

// Source reads legacy collections. collectionPath may name a sub-collection such as
// "checkins/abc/payments".
type Source interface {
	Documents(ctx context.Context, collectionPath string) ([]Document, error)
}

// FirestoreSource reads the legacy hosted Firestore project.
type FirestoreSource struct {
	Client *firestore.Client
}

// NewFirestoreSource opens a Firestore client with a service account key file.
func NewFirestoreSource(ctx context.Context, projectID, credentialsFile string) (*FirestoreSource, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, cfg, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return &FirestoreSource{Client: client}, nil
}

func (s *FirestoreSource) Documents(ctx context.Context, collectionPath string) ([]Document, error) {
	snaps, err := s.Client.Collection(collectionPath).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collectionPath, err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{
			ID:   snap.Ref.ID,
			Path: collectionPath + "/" + snap.Ref.ID,
			Data: snap.Data(),
		})
	}
	return docs, nil
}

func (s *FirestoreSource) Close() error {
	return s.Client.Close()
}

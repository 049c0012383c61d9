package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"subtrackr-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is a common error for when a document is not found in Firestore.
// It is shared by all repositories in this package.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user profile document to Firestore. The Firebase Auth
// UID is used as the document ID. CreatedAt and UpdatedAt are populated
// server-side via the serverTimestamp tags.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with UID '%s' already exists: %w", user.UID, err)
		}
		return fmt.Errorf("failed to create user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// GetByUID retrieves a user profile document by its Firebase Auth UID.
func (r *firestoreUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByUID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID

	return &user, nil
}

// Update replaces an existing user profile document with the given model.
// Callers pass complete models read from the store, so a full-document Set
// is correct; merge options would be rejected by the client for struct data.
func (r *firestoreUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to update user with UID '%s': %w", user.UID, err)
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/messagely/messaging-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB. The username
// is the document _id, so uniqueness is enforced by the collection itself and
// concurrent registrations are serialized by the server, not by application
// locking.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	Username     string     `bson:"_id"`
	PasswordHash string     `bson:"password_hash"`
	FirstName    string     `bson:"first_name"`
	LastName     string     `bson:"last_name"`
	Phone        string     `bson:"phone"`
	JoinedAt     time.Time  `bson:"joined_at"`
	LastLoginAt  *time.Time `bson:"last_login_at,omitempty"`
}

func (u mongoUser) toDomain() *domain.User {
	user := &domain.User{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		JoinedAt:     u.JoinedAt.UTC(),
	}
	if u.LastLoginAt != nil {
		user.LastLoginAt = u.LastLoginAt.UTC()
	}
	return user
}

// Create inserts a new user document. A duplicate username fails with
// domain.ErrUserExists and leaves the existing record untouched.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		JoinedAt:     user.JoinedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u mongoUser
	if err := r.col.FindOne(ctx, bson.M{"_id": username}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u.toDomain(), nil
}

// UpdateLastLogin sets last_login_at to now in a single atomic update and
// returns the stored timestamp.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": username},
		bson.M{"$set": bson.M{"last_login_at": now}},
		opts,
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, domain.ErrUserNotFound
		}
		return time.Time{}, fmt.Errorf("update last login: %w", err)
	}
	if u.LastLoginAt == nil {
		return now, nil
	}
	return u.LastLoginAt.UTC(), nil
}

// ListAll returns every user in insertion order.
func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.User
	for cur.Next(ctx) {
		var u mongoUser
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, u.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// FindByUsernames resolves a set of usernames with a single $in query.
func (r *UserRepository) FindByUsernames(ctx context.Context, usernames []string) (map[string]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": usernames}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]*domain.User, len(usernames))
	for cur.Next(ctx) {
		var u mongoUser
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out[u.Username] = u.toDomain()
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return out, nil
}

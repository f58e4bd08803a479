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

const collectionMessages = "messages"

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID           string     `bson:"_id"`
	FromUsername string     `bson:"from_username"`
	ToUsername   string     `bson:"to_username"`
	Body         string     `bson:"body"`
	SentAt       time.Time  `bson:"sent_at"`
	ReadAt       *time.Time `bson:"read_at"`
}

func (m mongoMessage) toDomain() *domain.Message {
	msg := &domain.Message{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt.UTC(),
	}
	if m.ReadAt != nil {
		at := m.ReadAt.UTC()
		msg.ReadAt = &at
	}
	return msg
}

func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoMessage
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return m.toDomain(), nil
}

// MarkRead sets read_at in a single first-write-wins update. The filter only
// matches while read_at is unset, so exactly one concurrent caller performs
// the write; everyone else reads back the value that won.
func (r *MessageRepository) MarkRead(ctx context.Context, id string, at time.Time) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoMessage
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "read_at": nil},
		bson.M{"$set": bson.M{"read_at": at.UTC()}},
		opts,
	).Decode(&m)
	if err == nil {
		return m.ReadAt.UTC(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, fmt.Errorf("mark read: %w", err)
	}

	// No unread document matched: either already read (return the stored
	// timestamp) or the message does not exist.
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if existing.ReadAt == nil {
		return time.Time{}, fmt.Errorf("mark read: message %s in inconsistent state", id)
	}
	return *existing.ReadAt, nil
}

func (r *MessageRepository) ListFromUser(ctx context.Context, username string) ([]*domain.Message, error) {
	return r.list(ctx, bson.M{"from_username": username})
}

func (r *MessageRepository) ListToUser(ctx context.Context, username string) ([]*domain.Message, error) {
	return r.list(ctx, bson.M{"to_username": username})
}

func (r *MessageRepository) list(ctx context.Context, filter bson.M) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Message
	for cur.Next(ctx) {
		var m mongoMessage
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the per-user listing queries.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_username", Value: 1}, {Key: "sent_at", Value: 1}}},
		{Keys: bson.D{{Key: "to_username", Value: 1}, {Key: "sent_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nftforge/internal/domain"
)

// TeamReferencesCollection holds documents shaped {teamName, teamBasePrompt}.
const TeamReferencesCollection = "team_references"

type teamReferenceDoc struct {
	TeamName       string    `bson:"teamName"`
	TeamBasePrompt string    `bson:"teamBasePrompt"`
	CreatedAt      time.Time `bson:"createdAt,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty"`
}

// MongoTeamStore reads team prompts from the team_references collection.
type MongoTeamStore struct {
	coll *mongo.Collection
}

func NewMongoTeamStore(db *mongo.Database) *MongoTeamStore {
	return &MongoTeamStore{coll: db.Collection(TeamReferencesCollection)}
}

// LoadTeamBasePrompt matches teamName exactly and returns the stored prompt
// verbatim.
func (s *MongoTeamStore) LoadTeamBasePrompt(ctx context.Context, teamName string) (string, error) {
	var doc teamReferenceDoc
	err := s.coll.FindOne(ctx, bson.M{"teamName": teamName}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", domain.ReferenceMissf("No reference found for team %s", teamName)
	}
	if err != nil {
		return "", fmt.Errorf("reference: find team %s: %w", teamName, err)
	}
	return doc.TeamBasePrompt, nil
}

// PutTeamBasePrompt upserts a team prompt.
func (s *MongoTeamStore) PutTeamBasePrompt(ctx context.Context, teamName, basePrompt string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"teamBasePrompt": basePrompt, "updatedAt": now},
		"$setOnInsert": bson.M{"teamName": teamName, "createdAt": now},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"teamName": teamName}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("reference: upsert team %s: %w", teamName, err)
	}
	return nil
}

// EnsureIndexes creates the unique teamName index.
func (s *MongoTeamStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("reference: create team index: %w", err)
	}
	return nil
}

func (s *MongoTeamStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"notesvc/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a real mongod. Set MONGO_TEST_URI to enable, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 go test ./repository/
func newTestCollection(t *testing.T) *mongo.Collection {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	coll := client.Database("notesvc_test").Collection("notes")
	t.Cleanup(func() { coll.Drop(context.Background()) })
	return coll
}

func TestNotesRepoOwnerScoping(t *testing.T) {
	repo := &NotesRepo{MongoCollection: newTestCollection(t)}
	ctx := context.Background()

	ownerA := uuid.NewString()
	ownerB := uuid.NewString()

	mkNote := func(owner string, createdAt time.Time) *model.Note {
		return &model.Note{
			NoteUUID:  uuid.NewString(),
			UserID:    owner,
			Title:     "title",
			Content:   "content",
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
	}

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := mkNote(ownerA, base.Add(-time.Hour))
	newer := mkNote(ownerA, base)
	foreign := mkNote(ownerB, base)

	for _, n := range []*model.Note{older, newer, foreign} {
		if err := repo.Insert(ctx, n); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	t.Run("FindNewestFirst", func(t *testing.T) {
		notes, err := repo.FindByOwner(ctx, ownerA, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
		if notes[0].NoteUUID != newer.NoteUUID {
			t.Errorf("newest note not first")
		}
	})

	t.Run("FindScopedToOwner", func(t *testing.T) {
		notes, err := repo.FindByOwner(ctx, ownerA, []string{foreign.NoteUUID})
		if err != nil {
			t.Fatal(err)
		}
		if len(notes) != 0 {
			t.Errorf("foreign note returned to wrong owner")
		}
	})

	t.Run("UpdateScopedToOwner", func(t *testing.T) {
		title := "stolen"
		note, err := repo.UpdateOwned(ctx, ownerA, foreign.NoteUUID, &title, nil, time.Now().UTC())
		if err != nil {
			t.Fatal(err)
		}
		if note != nil {
			t.Error("cross-owner update matched")
		}
	})

	t.Run("DeleteScopedToOwner", func(t *testing.T) {
		deleted, err := repo.DeleteOwned(ctx, ownerA, []string{older.NoteUUID, foreign.NoteUUID})
		if err != nil {
			t.Fatal(err)
		}
		if deleted != 1 {
			t.Errorf("expected 1 deletion, got %d", deleted)
		}

		left, err := repo.FindByOwner(ctx, ownerB, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(left) != 1 {
			t.Errorf("foreign note deleted")
		}
	})
}

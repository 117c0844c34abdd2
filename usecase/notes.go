package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notesvc/model"
	"notesvc/utils"

	"github.com/google/uuid"
)

const maxTitleLength = 255

// NotesStore is the persistence contract the service runs against. Every
// method takes the owner's user ID and must keep it in the query filter;
// there is no unscoped access path.
type NotesStore interface {
	// FindByOwner returns the owner's notes newest-first. A non-empty
	// noteUUIDs restricts the result to that set.
	FindByOwner(ctx context.Context, userID string, noteUUIDs []string) ([]*model.Note, error)
	Insert(ctx context.Context, note *model.Note) error
	// DeleteOwned removes the owner's notes among noteUUIDs in a single
	// filtered statement and reports how many matched.
	DeleteOwned(ctx context.Context, userID string, noteUUIDs []string) (int64, error)
	// UpdateOwned sets the non-nil fields plus updated_at on the owner's
	// note and returns the updated document, or nil when no owned note
	// matched.
	UpdateOwned(ctx context.Context, userID, noteUUID string, title, content *string, updatedAt time.Time) (*model.Note, error)
}

type NotesService struct {
	Store            NotesStore
	MaxContentLength int
}

func NewNotesService(store NotesStore) *NotesService {
	return &NotesService{
		Store:            store,
		MaxContentLength: utils.GetEnvAsInt("MAX_CONTENT_LENGTH", 10000),
	}
}

// ListNotes returns the caller's notes, optionally restricted to noteUUIDs.
// Identifiers that match nothing the caller owns simply produce no rows.
func (s *NotesService) ListNotes(ctx context.Context, userID string, noteUUIDs []string) ([]*model.Note, error) {
	if err := validateUUIDs(noteUUIDs); err != nil {
		return nil, err
	}

	notes, err := s.Store.FindByOwner(ctx, userID, noteUUIDs)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return notes, nil
}

// CreateNote validates both fields up front and persists nothing on failure.
func (s *NotesService) CreateNote(ctx context.Context, userID, title, content string) (*model.Note, error) {
	ve := &ValidationError{Fields: map[string]string{}}
	if reason, ok := s.checkTitle(title); !ok {
		ve.Fields["title"] = reason
	}
	if reason, ok := s.checkContent(content); !ok {
		ve.Fields["content"] = reason
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	now := time.Now().UTC()
	note := &model.Note{
		NoteUUID:  uuid.NewString(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Insert(ctx, note); err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

// DeleteNotes removes every supplied note the caller owns in one statement.
// Foreign or unknown identifiers are ignored; ErrNoteNotFound is returned
// only when nothing at all matched.
func (s *NotesService) DeleteNotes(ctx context.Context, userID string, noteUUIDs []string) error {
	if len(noteUUIDs) == 0 {
		return NewValidationError("note_uuid", "No note UUIDs provided.")
	}
	if err := validateUUIDs(noteUUIDs); err != nil {
		return err
	}

	deleted, err := s.Store.DeleteOwned(ctx, userID, noteUUIDs)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("delete")
	return nil
}

// UpdateNote applies only the supplied fields to the caller's note and
// refreshes updated_at. A nil title or content means "leave unchanged".
func (s *NotesService) UpdateNote(ctx context.Context, userID, noteUUID string, title, content *string) (*model.Note, error) {
	if noteUUID == "" {
		return nil, NewValidationError("note_uuid", "No note UUID provided.")
	}
	if _, err := uuid.Parse(noteUUID); err != nil {
		return nil, NewValidationError("note_uuid", fmt.Sprintf("%q is not a valid UUID", noteUUID))
	}

	ve := &ValidationError{Fields: map[string]string{}}
	if title != nil {
		if reason, ok := s.checkTitle(*title); !ok {
			ve.Fields["title"] = reason
		} else {
			trimmed := strings.TrimSpace(*title)
			title = &trimmed
		}
	}
	if content != nil {
		if reason, ok := s.checkContent(*content); !ok {
			ve.Fields["content"] = reason
		}
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	note, err := s.Store.UpdateOwned(ctx, userID, noteUUID, title, content, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	utils.TrackNoteOperation("update")
	return note, nil
}

func (s *NotesService) checkTitle(title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "note title is required", false
	}
	if len(title) > maxTitleLength {
		return fmt.Sprintf("note title exceeds maximum length of %d", maxTitleLength), false
	}
	return "", true
}

func (s *NotesService) checkContent(content string) (string, bool) {
	if strings.TrimSpace(content) == "" {
		return "note content is required", false
	}
	if len(content) > s.MaxContentLength {
		return fmt.Sprintf("note content exceeds maximum length of %d", s.MaxContentLength), false
	}
	return "", true
}

func validateUUIDs(noteUUIDs []string) error {
	for _, id := range noteUUIDs {
		if _, err := uuid.Parse(id); err != nil {
			return NewValidationError("note_uuid", fmt.Sprintf("%q is not a valid UUID", id))
		}
	}
	return nil
}

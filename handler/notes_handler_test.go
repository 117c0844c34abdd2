package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"testing"
	"time"

	"notesvc/model"
	"notesvc/usecase"
	"notesvc/utils"

	"github.com/gin-gonic/gin"
)

type fakeNotesStore struct {
	notes []*model.Note
}

func (s *fakeNotesStore) FindByOwner(_ context.Context, userID string, noteUUIDs []string) ([]*model.Note, error) {
	wanted := map[string]bool{}
	for _, id := range noteUUIDs {
		wanted[id] = true
	}
	var out []*model.Note
	for _, n := range s.notes {
		if n.UserID == userID && (len(wanted) == 0 || wanted[n.NoteUUID]) {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeNotesStore) Insert(_ context.Context, note *model.Note) error {
	copied := *note
	s.notes = append(s.notes, &copied)
	return nil
}

func (s *fakeNotesStore) DeleteOwned(_ context.Context, userID string, noteUUIDs []string) (int64, error) {
	wanted := map[string]bool{}
	for _, id := range noteUUIDs {
		wanted[id] = true
	}
	var kept []*model.Note
	var deleted int64
	for _, n := range s.notes {
		if n.UserID == userID && wanted[n.NoteUUID] {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	s.notes = kept
	return deleted, nil
}

func (s *fakeNotesStore) UpdateOwned(_ context.Context, userID, noteUUID string, title, content *string, updatedAt time.Time) (*model.Note, error) {
	for _, n := range s.notes {
		if n.UserID == userID && n.NoteUUID == noteUUID {
			if title != nil {
				n.Title = *title
			}
			if content != nil {
				n.Content = *content
			}
			n.UpdatedAt = updatedAt
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

// newTestRouter wires the notes routes with a header-driven identity so
// tests can act as different users without real tokens.
func newTestRouter(store *fakeNotesStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Next()
	})

	h := NewNotesHandler(&usecase.NotesService{Store: store, MaxContentLength: 10000})
	router.GET("/api/notes", h.ListNotes)
	router.POST("/api/notes", h.CreateNote)
	router.DELETE("/api/notes", h.DeleteNotes)
	router.PATCH("/api/notes", h.UpdateNote)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, target, user, body string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var envelope utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not a valid envelope: %v (%s)", err, w.Body.String())
	}
	if envelope.Status != w.Code {
		t.Errorf("envelope status %d does not match HTTP status %d", envelope.Status, w.Code)
	}
	return w, envelope
}

func noteField(t *testing.T, data interface{}, field string) string {
	t.Helper()
	obj, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected note object, got %T", data)
	}
	value, _ := obj[field].(string)
	return value
}

// TestNotesLifecycle walks the full create/list/patch/delete flow for two
// users and checks cross-user isolation at every step.
func TestNotesLifecycle(t *testing.T) {
	store := &fakeNotesStore{}
	router := newTestRouter(store)

	// User A creates a note.
	w, envelope := doJSON(t, router, http.MethodPost, "/api/notes", "user-a",
		`{"title": "shopping", "content": "milk,eggs"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	noteUUID := noteField(t, envelope.Data, "note_uuid")
	if noteUUID == "" {
		t.Fatal("create: response missing note_uuid")
	}
	createdAt := noteField(t, envelope.Data, "created_at")
	updatedAt := noteField(t, envelope.Data, "updated_at")
	if createdAt != updatedAt {
		t.Errorf("create: created_at %s != updated_at %s", createdAt, updatedAt)
	}

	// User B sees nothing, even asking for A's identifier directly.
	w, envelope = doJSON(t, router, http.MethodGet,
		"/api/notes?note_uuid="+url.QueryEscape(noteUUID), "user-b", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if list, ok := envelope.Data.([]interface{}); !ok || len(list) != 0 {
		t.Errorf("list: user B sees user A's notes: %v", envelope.Data)
	}

	// User A patches only the content.
	time.Sleep(time.Millisecond)
	w, envelope = doJSON(t, router, http.MethodPatch, "/api/notes", "user-a",
		fmt.Sprintf(`{"note_uuid": %q, "content": "milk,eggs,bread"}`, noteUUID))
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if title := noteField(t, envelope.Data, "title"); title != "shopping" {
		t.Errorf("patch: title changed to %q", title)
	}
	prior, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		t.Fatalf("create: bad updated_at %q: %v", updatedAt, err)
	}
	current, err := time.Parse(time.RFC3339Nano, noteField(t, envelope.Data, "updated_at"))
	if err != nil {
		t.Fatalf("patch: bad updated_at: %v", err)
	}
	if !current.After(prior) {
		t.Errorf("patch: updated_at did not increase (%s -> %s)", prior, current)
	}

	// User B cannot patch or delete A's note.
	w, _ = doJSON(t, router, http.MethodPatch, "/api/notes", "user-b",
		fmt.Sprintf(`{"note_uuid": %q, "title": "stolen"}`, noteUUID))
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign patch: expected 404, got %d", w.Code)
	}
	w, _ = doJSON(t, router, http.MethodDelete, "/api/notes", "user-b",
		fmt.Sprintf(`{"note_uuid": [%q]}`, noteUUID))
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: expected 404, got %d", w.Code)
	}

	// User A deletes the note.
	w, envelope = doJSON(t, router, http.MethodDelete, "/api/notes", "user-a",
		fmt.Sprintf(`{"note_uuid": [%q]}`, noteUUID))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if envelope.Message["success"] == "" {
		t.Errorf("delete: expected success message, got %v", envelope.Message)
	}

	w, envelope = doJSON(t, router, http.MethodGet, "/api/notes", "user-a", "")
	if list, ok := envelope.Data.([]interface{}); !ok || len(list) != 0 {
		t.Errorf("list after delete: expected empty list, got %v", envelope.Data)
	}
}

func TestNotesValidationResponses(t *testing.T) {
	store := &fakeNotesStore{}
	router := newTestRouter(store)

	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		expectedCode int
		wantField    string
	}{
		{"Create Missing Title", http.MethodPost, "/api/notes", `{"content": "c"}`, http.StatusBadRequest, "title"},
		{"Create Empty Content", http.MethodPost, "/api/notes", `{"title": "t", "content": ""}`, http.StatusBadRequest, "content"},
		{"Create Malformed Body", http.MethodPost, "/api/notes", `{"title":`, http.StatusBadRequest, "error"},
		{"List Bad UUID", http.MethodGet, "/api/notes?note_uuid=garbage", "", http.StatusBadRequest, "note_uuid"},
		{"Delete Empty List", http.MethodDelete, "/api/notes", `{"note_uuid": []}`, http.StatusBadRequest, "note_uuid"},
		{"Delete Bad UUID", http.MethodDelete, "/api/notes", `{"note_uuid": ["garbage"]}`, http.StatusBadRequest, "note_uuid"},
		{"Patch Missing UUID", http.MethodPatch, "/api/notes", `{"title": "t"}`, http.StatusBadRequest, "note_uuid"},
		{"Patch Empty Title", http.MethodPatch, "/api/notes", `{"note_uuid": "b5cf5d6a-4f22-4d0c-9e5d-111111111111", "title": ""}`, http.StatusBadRequest, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doJSON(t, router, tt.method, tt.target, "user-a", tt.body)
			if w.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d (%s)", tt.expectedCode, w.Code, w.Body.String())
			}
			if _, ok := envelope.Message[tt.wantField]; !ok {
				t.Errorf("expected message field %q, got %v", tt.wantField, envelope.Message)
			}
			if len(store.notes) != 0 {
				t.Errorf("validation failure persisted a note")
			}
		})
	}
}

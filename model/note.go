package model

import (
	"time"
)

// Note is the single entity of the service. NoteUUID is the only identifier
// ever exposed to clients; the mongo _id stays internal. UserID is set once
// at creation and never changes.
type Note struct {
	NoteUUID  string    `bson:"note_uuid" json:"note_uuid"`
	UserID    string    `bson:"user_id" json:"-"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

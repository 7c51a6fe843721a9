package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNoteCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      NoteCreate
		wantErr string
	}{
		{name: "valid", in: NoteCreate{Title: "Groceries", Content: "milk"}},
		{name: "empty content allowed", in: NoteCreate{Title: "Groceries"}},
		{name: "missing title", in: NoteCreate{Content: "milk"}, wantErr: "title is required"},
		{name: "whitespace title", in: NoteCreate{Title: "   "}, wantErr: "title is required"},
		{name: "title too long", in: NoteCreate{Title: strings.Repeat("a", 226)}, wantErr: "title must be at most 225 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Contains(t, verr.Error(), tt.wantErr)
		})
	}
}

func TestNoteUpdate_Validate(t *testing.T) {
	assert.NoError(t, NoteUpdate{}.Validate(), "empty patch is valid")
	assert.NoError(t, NoteUpdate{Content: strPtr("")}.Validate(), "content may be cleared")
	assert.NoError(t, NoteUpdate{Title: strPtr("New")}.Validate())

	err := NoteUpdate{Title: strPtr(" ")}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestNoteUpdate_Apply(t *testing.T) {
	note := Note{ID: 1, Title: "Old", Content: "Body", AuthorID: 3}

	NoteUpdate{Title: strPtr("New")}.Apply(&note)
	assert.Equal(t, "New", note.Title)
	assert.Equal(t, "Body", note.Content, "unset content must stay unchanged")
	assert.Equal(t, int64(3), note.AuthorID)

	NoteUpdate{Content: strPtr("")}.Apply(&note)
	assert.Equal(t, "", note.Content)
	assert.Equal(t, "New", note.Title)
}

func TestUserCreate_Validate(t *testing.T) {
	assert.NoError(t, UserCreate{Username: "alice", Password: "correct-horse"}.Validate())

	err := UserCreate{Username: "al", Password: "short"}.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "username", verr.Fields[0].Field)
	assert.Equal(t, "password", verr.Fields[1].Field)
}

func TestCaller_Owns(t *testing.T) {
	note := Note{ID: 10, AuthorID: 5}

	assert.True(t, Caller{UserID: 5}.Owns(note))
	assert.False(t, Caller{UserID: 6}.Owns(note))
	assert.False(t, Caller{}.Owns(Note{ID: 11}), "anonymous caller never owns a note")
}

func TestUserCreate_Validate_PasswordBytes(t *testing.T) {
	assert.NoError(t, UserCreate{Username: "boris", Password: strings.Repeat("п", 36)}.Validate())

	err := UserCreate{Username: "boris", Password: strings.Repeat("п", 37)}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must be at most 72 bytes")
}

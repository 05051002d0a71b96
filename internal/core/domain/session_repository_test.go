package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_AddParticipant(t *testing.T) {
	s := &Session{ID: 11}

	assert.True(t, s.AddParticipant(77))
	assert.False(t, s.AddParticipant(77))
	assert.Equal(t, []UserID{77}, s.Participants)
	assert.True(t, s.HasParticipant(77))
}

func TestSession_RemoveParticipant(t *testing.T) {
	s := &Session{ID: 12, Participants: []UserID{1, 88, 3}}

	assert.True(t, s.RemoveParticipant(88))
	assert.ElementsMatch(t, []UserID{1, 3}, s.Participants)
	assert.False(t, s.RemoveParticipant(88))
	assert.False(t, s.HasParticipant(88))
}

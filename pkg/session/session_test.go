package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestLoad_MissingFileYieldsEmptySession(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess.Token)
	assert.Empty(t, sess.HostID)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	err := store.Save(&Session{
		Token:  &oauth2.Token{AccessToken: "abc123", Expiry: time.Now().Add(time.Hour).UTC()},
		HostID: "host-1",
		Email:  "host@example.com",
	})
	require.NoError(t, err)

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess.Token)
	assert.Equal(t, "abc123", sess.Token.AccessToken)
	assert.Equal(t, "host-1", sess.HostID)
	assert.Equal(t, "host@example.com", sess.Email)
}

func TestClear_RemovesSessionAndIsIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(&Session{Token: &oauth2.Token{AccessToken: "abc123"}}))
	require.NoError(t, store.Clear())

	_, ok := store.BearerToken()
	assert.False(t, ok)

	// Clearing again should not fail
	assert.NoError(t, store.Clear())
}

func TestBearerToken_PresentAndAbsent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	_, ok := store.BearerToken()
	assert.False(t, ok)

	require.NoError(t, store.Save(&Session{Token: &oauth2.Token{AccessToken: "abc123"}}))

	token, ok := store.BearerToken()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)
}

func TestSubjectFromToken(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "host-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	subject, err := SubjectFromToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "host-42", subject)
}

func TestSubjectFromToken_NoSubject(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = SubjectFromToken(signed)
	assert.Error(t, err)
}

func TestSubjectFromToken_Garbage(t *testing.T) {
	_, err := SubjectFromToken("not-a-jwt")
	assert.Error(t, err)
}

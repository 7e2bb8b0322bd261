package aarogyam

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SessionStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store, err := OpenSessionStore(path)
	require.NoError(t, err)
	return store
}

func TestOpenSessionStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")

	store, err := OpenSessionStore(path)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
}

func TestSessionStore_LoginPersists(t *testing.T) {
	store := testStore(t)

	user := User{Email: "a@b.com", Name: "Asha", Role: RoleUser}
	require.NoError(t, store.Login("tok-123", user))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-123", store.Token())
	require.NotNil(t, store.Current())
	assert.Equal(t, "Asha", store.Current().Name)

	// Reopen from disk and verify the session survived.
	reopened, err := OpenSessionStore(store.Path())
	require.NoError(t, err)
	assert.True(t, reopened.IsAuthenticated())
	assert.Equal(t, "tok-123", reopened.Token())
	require.NotNil(t, reopened.Current())
	assert.Equal(t, "a@b.com", reopened.Current().Email)
	assert.Equal(t, RoleUser, reopened.Current().Role)
}

func TestSessionStore_LoginEmptyToken(t *testing.T) {
	store := testStore(t)

	err := store.Login("", User{Email: "a@b.com"})
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_Logout(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Login("tok-123", User{Email: "a@b.com", Role: RoleAdmin}))

	require.NoError(t, store.Logout())

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Current())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Logging out twice is fine.
	require.NoError(t, store.Logout())
}

func TestSessionStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0600))

	store, err := OpenSessionStore(path)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_TokenWithoutUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw := []byte(`{"version":1,"token":"orphan"}`)
	require.NoError(t, os.WriteFile(path, raw, 0600))

	store, err := OpenSessionStore(path)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
}

func TestSessionStore_NewerVersionIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	raw := []byte(`{"version":99,"token":"tok","user":{"email":"a@b.com","role":"user"}}`)
	require.NoError(t, os.WriteFile(path, raw, 0600))

	store, err := OpenSessionStore(path)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Login("tok", User{Email: "a@b.com", Name: "Asha", Role: RoleUser}))

	u := store.Current()
	u.Name = "mutated"

	assert.Equal(t, "Asha", store.Current().Name)
}

func TestSessionStore_ExpiresAt(t *testing.T) {
	store := testStore(t)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@b.com",
		"exp":   exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.NoError(t, store.Login(signed, User{Email: "a@b.com", Role: RoleUser}))

	got, ok := store.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp), "expected %v, got %v", exp, got)
}

func TestSessionStore_ExpiresAtOpaqueToken(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Login("not-a-jwt", User{Email: "a@b.com", Role: RoleUser}))

	_, ok := store.ExpiresAt()
	assert.False(t, ok)
}

func TestSessionStore_ExpiresAtSignedOut(t *testing.T) {
	store := testStore(t)

	_, ok := store.ExpiresAt()
	assert.False(t, ok)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadUsers(t *testing.T) {
	users, err := ReadUsers(writeRoster(t, testRosterCSV))
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, User{
		Login: "jdoe",
		Mail:  "jdoe@example.com",
		Name:  "John Doe",
		Pwd:   "secret",
		Team:  "alpha",
	}, users[0])

	// file order is preserved, ids derive from it downstream
	assert.Equal(t, "msmith", users[1].Login)
	assert.Equal(t, "rroe", users[2].Login)
}

func TestReadUsers_ColumnOrderDoesNotMatter(t *testing.T) {
	users, err := ReadUsers(writeRoster(t,
		"team,login,pwd,name,mail\nalpha,jdoe,secret,John Doe,jdoe@example.com\n"))
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jdoe", users[0].Login)
	assert.Equal(t, "alpha", users[0].Team)
}

func TestReadUsers_WrongColumns(t *testing.T) {
	_, err := ReadUsers(writeRoster(t, "login,mail,name,team\njdoe,a@b.c,John,alpha\n"))
	assert.Error(t, err)
}

func TestReadUsers_DuplicateLogin(t *testing.T) {
	_, err := ReadUsers(writeRoster(t,
		"login,mail,name,pwd,team\njdoe,a@b.c,John,x,alpha\njdoe,d@e.f,Jane,y,beta\n"))
	assert.Error(t, err)
}

func TestReadUsers_Empty(t *testing.T) {
	_, err := ReadUsers(writeRoster(t, ""))
	assert.Error(t, err)
}

func TestReadUsers_MissingFile(t *testing.T) {
	_, err := ReadUsers(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

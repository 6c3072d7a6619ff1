package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ramsey-B/clover/internal/platform/database"
	"github.com/Ramsey-B/clover/pkg/directory/postgres"
	"github.com/Ramsey-B/clover/pkg/models"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	// Use environment variables or defaults for test DB
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "postgres"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "postgres"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "clover"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

func getTestDirectory(t *testing.T) *postgres.Directory {
	t.Helper()
	dir := postgres.New(getTestDB(t), getTestLogger())
	require.NoError(t, dir.MigrateUp("../../../db/pg"))
	return dir
}

func TestDirectoryContactCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := getTestDirectory(t)
	ctx := context.Background()

	status, err := dir.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AuthStatusAuthorized, status)

	ref, err := dir.Create(ctx, models.Draft{
		GivenName:    "Ada",
		FamilyName:   "Lovelace",
		Organization: "Analytical Engines Ltd",
		Emails:       []models.LabeledValue{{Label: "work", Value: "ada@engines.example"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ref.ID)
	assert.Equal(t, postgres.DefaultContainerID, ref.ContainerID)

	found, err := dir.Fetch(ctx, []models.Ref{ref, {ID: "missing"}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	item := found[ref.ID]
	assert.Equal(t, "Ada", item.GivenName)
	assert.Equal(t, "ada@engines.example", item.Emails[0].Value)
	assert.False(t, item.ModifiedAt.IsZero())

	item.JobTitle = "Mathematician"
	require.NoError(t, dir.Write(ctx, ref, item))

	found, err = dir.Fetch(ctx, []models.Ref{ref})
	require.NoError(t, err)
	updated := found[ref.ID]
	assert.Equal(t, "Mathematician", updated.JobTitle)
	assert.True(t, updated.ModifiedAt.After(item.ModifiedAt))

	// a write against the stale read is a conflict
	item.JobTitle = "Analyst"
	err = dir.Write(ctx, ref, item)
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeConflict, models.CodeOf(err))

	require.NoError(t, dir.Delete(ctx, ref))
	err = dir.Delete(ctx, ref)
	assert.Equal(t, models.ErrorCodeNotFound, models.CodeOf(err))
}

func TestDirectoryValidatesEmails(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := getTestDirectory(t)
	ctx := context.Background()

	_, err := dir.Create(ctx, models.Draft{
		Emails: []models.LabeledValue{{Label: "work", Value: "not-an-email"}},
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))
}

func TestDirectoryGroupLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := getTestDirectory(t)
	ctx := context.Background()

	group, err := dir.CreateGroup(ctx, "Friends", "")
	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)

	renamed, err := dir.RenameGroup(ctx, group.GroupRef, "Colleagues")
	require.NoError(t, err)
	assert.Equal(t, "Colleagues", renamed.Name)

	ref, err := dir.Create(ctx, models.Draft{GivenName: "Grace", GroupIDs: []string{group.ID}})
	require.NoError(t, err)

	found, err := dir.Fetch(ctx, []models.Ref{ref})
	require.NoError(t, err)
	assert.Equal(t, []string{group.ID}, found[ref.ID].GroupIDs)

	// deleting the group drops the membership via cascade
	require.NoError(t, dir.DeleteGroup(ctx, group.GroupRef))

	found, err = dir.Fetch(ctx, []models.Ref{ref})
	require.NoError(t, err)
	assert.Empty(t, found[ref.ID].GroupIDs)

	err = dir.DeleteGroup(ctx, group.GroupRef)
	assert.Equal(t, models.ErrorCodeNotFound, models.CodeOf(err))

	require.NoError(t, dir.Delete(ctx, ref))
}

func TestDirectoryRejectsUnknownGroupMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := getTestDirectory(t)
	ctx := context.Background()

	_, err := dir.Create(ctx, models.Draft{
		GivenName: "Grace",
		GroupIDs:  []string{"no-such-group"},
	})
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))

	// same classification on the update path
	ref, err := dir.Create(ctx, models.Draft{GivenName: "Grace"})
	require.NoError(t, err)
	defer dir.Delete(ctx, ref)

	found, err := dir.Fetch(ctx, []models.Ref{ref})
	require.NoError(t, err)
	item := found[ref.ID]
	item.GroupIDs = []string{"no-such-group"}

	err = dir.Write(ctx, ref, item)
	require.Error(t, err)
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))
}

func TestDirectoryRejectsEmptyGroupName(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dir := getTestDirectory(t)
	ctx := context.Background()

	_, err := dir.CreateGroup(ctx, "   ", "")
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))

	_, err = dir.RenameGroup(ctx, models.GroupRef{ID: "any"}, "")
	assert.Equal(t, models.ErrorCodeValidation, models.CodeOf(err))
}

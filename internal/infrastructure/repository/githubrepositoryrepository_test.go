package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/folio-inc/folio/internal/domain/github"
)

func testRepo(accountID uint, fullName string, fork bool) *github.Repository {
	pushed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &github.Repository{
		AccountID:       accountID,
		FullName:        fullName,
		Name:            fullName,
		StargazersCount: 1,
		IsFork:          fork,
		Topics:          datatypes.NewJSONSlice([]string{"go"}),
		Languages:       datatypes.NewJSONType(map[string]int64{"Go": 100}),
		RemotePushedAt:  &pushed,
	}
}

func TestGitHubRepositoryRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubRepositoryRepository(db, testLogger())
	ctx := context.Background()

	t.Run("insert then update by composite key", func(t *testing.T) {
		first := testRepo(1, "alice/folio", false)
		require.NoError(t, repo.Upsert(ctx, first))

		second := testRepo(1, "alice/folio", false)
		second.StargazersCount = 7
		second.Languages = datatypes.NewJSONType(map[string]int64{"Go": 200, "Shell": 10})
		require.NoError(t, repo.Upsert(ctx, second))

		repos, err := repo.ListByAccount(ctx, 1)
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, 7, repos[0].StargazersCount)
		assert.Equal(t, map[string]int64{"Go": 200, "Shell": 10}, repos[0].Languages.Data())
	})

	t.Run("upsert preserves featured flag", func(t *testing.T) {
		seeded := testRepo(2, "alice/curated", false)
		require.NoError(t, repo.Upsert(ctx, seeded))

		seeded.Featured = true
		require.NoError(t, repo.Update(ctx, seeded))

		resynced := testRepo(2, "alice/curated", false)
		resynced.StargazersCount = 99
		require.NoError(t, repo.Upsert(ctx, resynced))

		repos, err := repo.ListByAccount(ctx, 2)
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.True(t, repos[0].Featured)
		assert.Equal(t, 99, repos[0].StargazersCount)
	})

	t.Run("same full name under different accounts", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testRepo(3, "shared/name", false)))
		require.NoError(t, repo.Upsert(ctx, testRepo(4, "shared/name", false)))

		reposA, err := repo.ListByAccount(ctx, 3)
		require.NoError(t, err)
		reposB, err := repo.ListByAccount(ctx, 4)
		require.NoError(t, err)
		assert.Len(t, reposA, 1)
		assert.Len(t, reposB, 1)
	})
}

func TestGitHubRepositoryRepository_DeleteByFullNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubRepositoryRepository(db, testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRepo(1, "alice/keep", false)))
	require.NoError(t, repo.Upsert(ctx, testRepo(1, "alice/stale", false)))
	require.NoError(t, repo.Upsert(ctx, testRepo(2, "alice/stale", false)))

	deleted, err := repo.DeleteByFullNames(ctx, 1, []string{"alice/stale"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	names, err := repo.ListFullNames(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/keep"}, names)

	// The other account's row with the same full name is untouched.
	otherNames, err := repo.ListFullNames(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/stale"}, otherNames)

	deleted, err = repo.DeleteByFullNames(ctx, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestGitHubRepositoryRepository_ListSourceRepositories(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubRepositoryRepository(db, testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRepo(1, "alice/source", false)))
	require.NoError(t, repo.Upsert(ctx, testRepo(1, "alice/forked", true)))

	repos, err := repo.ListSourceRepositories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "alice/source", repos[0].FullName)
}

func TestGitHubRepositoryRepository_ListByAccount_Ordering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGitHubRepositoryRepository(db, testLogger())
	ctx := context.Background()

	older := testRepo(1, "alice/older", false)
	olderPush := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	older.RemotePushedAt = &olderPush
	require.NoError(t, repo.Upsert(ctx, older))

	newer := testRepo(1, "alice/newer", false)
	require.NoError(t, repo.Upsert(ctx, newer))

	featured := testRepo(1, "alice/featured", false)
	featured.RemotePushedAt = &olderPush
	require.NoError(t, repo.Upsert(ctx, featured))
	featured.Featured = true
	require.NoError(t, repo.Update(ctx, featured))

	repos, err := repo.ListByAccount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, repos, 3)
	assert.Equal(t, "alice/featured", repos[0].FullName)
	assert.Equal(t, "alice/newer", repos[1].FullName)
	assert.Equal(t, "alice/older", repos[2].FullName)
}

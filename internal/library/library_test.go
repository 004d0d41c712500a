package library

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
	"github.com/verte-zerg/typelingo/internal/model"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = lib.Close()
	})
	return lib
}

func TestSaveAndGetArticle(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()

	article := model.ArticleFromPair([]string{"Guten Tag", "Wie geht es?"}, []string{"Good day", "How are you?"})
	require.NoError(t, lib.SaveArticle(ctx, &article))
	assert.NotEmpty(t, article.ID)
	assert.False(t, article.CreatedAt.IsZero())

	got, err := lib.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guten Tag", got.Title)
	assert.Equal(t, article.Paragraphs, got.Paragraphs)

	_, err = lib.GetArticle(ctx, "art-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListArticlesOldestFirst(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	newer := model.Article{Title: "newer", CreatedAt: base.Add(time.Hour)}
	older := model.Article{Title: "older", CreatedAt: base}
	require.NoError(t, lib.SaveArticle(ctx, &newer))
	require.NoError(t, lib.SaveArticle(ctx, &older))

	articles, err := lib.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "older", articles[0].Title)
	assert.Equal(t, "newer", articles[1].Title)
}

func TestPairingsLifecycle(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	article := model.ArticleFromPair([]string{"a b", "c d"}, []string{"x y", "z w"})
	require.NoError(t, lib.SaveArticle(ctx, &article))

	got, err := lib.LoadPairings(ctx, article.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got)

	pairs := []model.Pairing{{StartPosition: 0, Original: []uint{0}, Translation: []uint{1}}}
	require.NoError(t, lib.SavePairings(ctx, article.ID, 1, pairs))
	got, err = lib.LoadPairings(ctx, article.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, pairs, got)

	require.NoError(t, lib.SavePairings(ctx, article.ID, 1, nil))
	got, err = lib.LoadPairings(ctx, article.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExportImportRoundTrip(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	article := model.ArticleFromPair([]string{"a b", "c d"}, []string{"x y", "z w"})
	require.NoError(t, lib.SaveArticle(ctx, &article))
	require.NoError(t, lib.SavePairings(ctx, article.ID, 0, []model.Pairing{
		{StartPosition: 0, Original: []uint{0, 1}, Translation: []uint{1}},
	}))
	require.NoError(t, lib.SavePairings(ctx, article.ID, 1, []model.Pairing{
		{StartPosition: 1, Original: []uint{1}, Translation: []uint{0}},
	}))

	exported, err := lib.ExportPairings(ctx)
	require.NoError(t, err)
	require.Len(t, exported[article.ID], 2)

	var buf bytes.Buffer
	require.NoError(t, WritePairings(&buf, exported))
	assert.Contains(t, buf.String(), `"start_position": 1`)
	decoded, err := ReadPairings(&buf)
	require.NoError(t, err)
	assert.Equal(t, exported, decoded)

	require.NoError(t, lib.SavePairings(ctx, article.ID, 0, nil))
	require.NoError(t, lib.ImportPairings(ctx, decoded))
	restored, err := lib.LoadPairings(ctx, article.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, exported[article.ID][0], restored)
}

func TestImportPairingsRejectsUnloadablePairings(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	article := model.ArticleFromPair([]string{"Guten Tag"}, []string{"Good day"})
	require.NoError(t, lib.SaveArticle(ctx, &article))

	good := model.Pairing{StartPosition: 0, Original: []uint{0}, Translation: []uint{0}}
	require.NoError(t, lib.SavePairings(ctx, article.ID, 0, []model.Pairing{good}))

	cases := map[string]model.Pairing{
		"empty original":    {Original: []uint{}, Translation: []uint{1}},
		"empty translation": {Original: []uint{1}},
		"original range":    {StartPosition: 2, Original: []uint{2}, Translation: []uint{0}},
		"translation range": {StartPosition: 1, Original: []uint{1}, Translation: []uint{5}},
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			err := lib.ImportPairings(ctx, model.PairingMap{
				article.ID: {0: {good, bad}},
			})
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			got, err := lib.LoadPairings(ctx, article.ID, 0)
			require.NoError(t, err)
			assert.Equal(t, []model.Pairing{good}, got)
		})
	}
}

func TestImportPairingsValidatesTargets(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	article := model.ArticleFromPair([]string{"a"}, []string{"x"})
	require.NoError(t, lib.SaveArticle(ctx, &article))

	err := lib.ImportPairings(ctx, model.PairingMap{"art-unknown": {0: nil}})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = lib.ImportPairings(ctx, model.PairingMap{article.ID: {3: nil}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteArticleRemovesPairings(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	article := model.ArticleFromPair([]string{"a"}, []string{"x"})
	require.NoError(t, lib.SaveArticle(ctx, &article))
	require.NoError(t, lib.SavePairings(ctx, article.ID, 0, []model.Pairing{
		{StartPosition: 0, Original: []uint{0}, Translation: []uint{0}},
	}))

	require.NoError(t, lib.DeleteArticle(ctx, article.ID))
	_, err := lib.GetArticle(ctx, article.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	exported, err := lib.ExportPairings(ctx)
	require.NoError(t, err)
	assert.Empty(t, exported)

	assert.ErrorIs(t, lib.DeleteArticle(ctx, article.ID), apperrors.ErrNotFound)
}

func TestSeedIfEmpty(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()

	added, err := lib.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = lib.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, added)

	articles, err := lib.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Len(t, articles[0].Paragraphs, 4)
	assert.Equal(t, sampleOriginal[0], articles[0].Title)
}

// Package library persists articles and their word pairings in Badger.
//
// Keys:
//
//	article:<articleID>             JSON model.Article
//	pairs:<articleID>:<paragraph>   JSON []model.Pairing
//
// Writes are last-write-wins; nothing coordinates concurrent saves of the
// same paragraph.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/verte-zerg/typelingo/internal/align"
	apperrors "github.com/verte-zerg/typelingo/internal/errors"
	"github.com/verte-zerg/typelingo/internal/id"
	"github.com/verte-zerg/typelingo/internal/model"
)

const (
	articlePrefix = "article:"
	pairsPrefix   = "pairs:"
)

// Library wraps a Badger database instance.
type Library struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens or creates the library at dir.
func Open(dir string, logger *slog.Logger) (*Library, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.External(err, "failed to open library")
	}
	if logger != nil {
		logger.Debug("library opened", "path", dir)
	}
	return &Library{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// SaveArticle stores an article, assigning an id and creation time when missing.
func (l *Library) SaveArticle(ctx context.Context, article *model.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if article.ID == "" {
		articleID, err := id.Generate(id.ArticlePrefix)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "failed to generate article id")
		}
		article.ID = articleID
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	if err := l.set(articleKey(article.ID), article); err != nil {
		return apperrors.Externalf(err, "failed to save article %s", article.ID)
	}
	return nil
}

// GetArticle loads an article by id.
func (l *Library) GetArticle(ctx context.Context, articleID string) (model.Article, error) {
	if err := ctx.Err(); err != nil {
		return model.Article{}, err
	}
	var article model.Article
	err := l.get(articleKey(articleID), &article)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.Article{}, apperrors.NotFoundf("article %s not found", articleID)
	}
	if err != nil {
		return model.Article{}, apperrors.Externalf(err, "failed to load article %s", articleID)
	}
	return article, nil
}

// ListArticles returns all articles, oldest first.
func (l *Library) ListArticles(ctx context.Context) ([]model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var articles []model.Article
	err := l.scan([]byte(articlePrefix), func(_ []byte, val []byte) error {
		var article model.Article
		if err := json.Unmarshal(val, &article); err != nil {
			return fmt.Errorf("failed to decode article: %w", err)
		}
		articles = append(articles, article)
		return nil
	})
	if err != nil {
		return nil, apperrors.External(err, "failed to list articles")
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.Before(articles[j].CreatedAt)
	})
	return articles, nil
}

// DeleteArticle removes an article and every pairing stored for it.
func (l *Library) DeleteArticle(ctx context.Context, articleID string) error {
	if _, err := l.GetArticle(ctx, articleID); err != nil {
		return err
	}
	keys := [][]byte{articleKey(articleID)}
	err := l.scan(articlePairsPrefix(articleID), func(key, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return apperrors.Externalf(err, "failed to delete article %s", articleID)
	}
	err = l.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Externalf(err, "failed to delete article %s", articleID)
	}
	return nil
}

// SavePairings replaces the pairings of one paragraph. An empty list deletes them.
func (l *Library) SavePairings(ctx context.Context, articleID string, paragraph int, pairings []model.Pairing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := pairsKey(articleID, paragraph)
	var err error
	if len(pairings) == 0 {
		err = l.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		})
	} else {
		err = l.set(key, pairings)
	}
	if err != nil {
		return apperrors.Externalf(err, "failed to save pairings for %s/%d", articleID, paragraph)
	}
	if l.logger != nil {
		l.logger.Debug("pairings saved", "article", articleID, "paragraph", paragraph, "count", len(pairings))
	}
	return nil
}

// LoadPairings returns the pairings of one paragraph, or nil when none are stored.
func (l *Library) LoadPairings(ctx context.Context, articleID string, paragraph int) ([]model.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pairings []model.Pairing
	err := l.get(pairsKey(articleID, paragraph), &pairings)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Externalf(err, "failed to load pairings for %s/%d", articleID, paragraph)
	}
	return pairings, nil
}

// ExportPairings collects every stored pairing.
func (l *Library) ExportPairings(ctx context.Context) (model.PairingMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := model.PairingMap{}
	err := l.scan([]byte(pairsPrefix), func(key, val []byte) error {
		articleID, paragraph, err := parsePairsKey(key)
		if err != nil {
			return err
		}
		var pairings []model.Pairing
		if err := json.Unmarshal(val, &pairings); err != nil {
			return fmt.Errorf("failed to decode pairings %s: %w", key, err)
		}
		if out[articleID] == nil {
			out[articleID] = map[int][]model.Pairing{}
		}
		out[articleID][paragraph] = pairings
		return nil
	})
	if err != nil {
		return nil, apperrors.External(err, "failed to export pairings")
	}
	return out, nil
}

// ImportPairings writes every paragraph in pairings. Each article must exist,
// each paragraph index must be within the article and every pairing must
// load into an alignment store with word indices inside the paragraph.
// Nothing is written unless the whole map is valid.
func (l *Library) ImportPairings(ctx context.Context, pairings model.PairingMap) error {
	for articleID, paragraphs := range pairings {
		article, err := l.GetArticle(ctx, articleID)
		if err != nil {
			return err
		}
		for paragraph, list := range paragraphs {
			if paragraph < 0 || paragraph >= len(article.Paragraphs) {
				return apperrors.Validationf("article %s has no paragraph %d", articleID, paragraph)
			}
			if err := checkPairings(article.Paragraphs[paragraph], list); err != nil {
				return apperrors.Validationf("article %s paragraph %d: %v", articleID, paragraph, err)
			}
		}
	}
	for articleID, paragraphs := range pairings {
		for paragraph, list := range paragraphs {
			if err := l.SavePairings(ctx, articleID, paragraph, list); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkPairings(p model.Paragraph, list []model.Pairing) error {
	originalWords := len(strings.Split(p.Original, " "))
	translationWords := len(strings.Split(p.Translation, " "))
	for i, pairing := range list {
		for _, idx := range pairing.Original {
			if int(idx) >= originalWords {
				return fmt.Errorf("pairing %d: original word %d out of range", i, idx)
			}
		}
		for _, idx := range pairing.Translation {
			if int(idx) >= translationWords {
				return fmt.Errorf("pairing %d: translation word %d out of range", i, idx)
			}
		}
	}
	_, err := align.FromPairings(list)
	return err
}

func (l *Library) get(key []byte, dest any) error {
	return l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

func (l *Library) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (l *Library) scan(prefix []byte, fn func(key, val []byte) error) error {
	return l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if err := item.Value(func(val []byte) error {
				return fn(key, val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func articleKey(articleID string) []byte {
	return []byte(articlePrefix + articleID)
}

func articlePairsPrefix(articleID string) []byte {
	return []byte(pairsPrefix + articleID + ":")
}

func pairsKey(articleID string, paragraph int) []byte {
	return []byte(pairsPrefix + articleID + ":" + strconv.Itoa(paragraph))
}

func parsePairsKey(key []byte) (string, int, error) {
	rest := strings.TrimPrefix(string(key), pairsPrefix)
	sep := strings.LastIndexByte(rest, ':')
	if sep < 0 {
		return "", 0, fmt.Errorf("malformed pairings key %q", key)
	}
	paragraph, err := strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed pairings key %q: %w", key, err)
	}
	return rest[:sep], paragraph, nil
}

package stores

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kanaverse/animeplay/backend/internal/models"
	"github.com/kanaverse/animeplay/backend/internal/storage"
)

// defaultPartition groups comments submitted without a content key.
const defaultPartition = "default"

// CommentStore keeps per-content comment lists inside one persisted mapping
// of content key to comment list.
type CommentStore struct {
	store storage.Store
	now   func() time.Time
}

// NewCommentStore creates a CommentStore on top of the storage port.
func NewCommentStore(store storage.Store) *CommentStore {
	return &CommentStore{store: store, now: time.Now}
}

// Add stores a new comment at the head of the content key's partition so the
// stored order stays most-recent-first. Submissions without a session or with
// a blank body are dropped silently.
func (s *CommentStore) Add(ctx context.Context, contentKey, text string, session *models.Session) (*models.Comment, error) {
	body := strings.TrimSpace(text)
	if session == nil || body == "" {
		return nil, nil
	}

	now := s.now()
	comment := models.Comment{
		ID:         strconv.FormatInt(now.UnixNano(), 10),
		AuthorID:   session.ID,
		AuthorName: session.Username,
		Body:       body,
		CreatedAt:  now.UTC(),
		Likes:      0,
		LikedBy:    []string{},
	}

	all, err := s.partitions(ctx)
	if err != nil {
		return nil, err
	}
	key := partitionKey(contentKey)
	all[key] = append([]models.Comment{comment}, all[key]...)
	if err := s.save(ctx, all); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ToggleLike flips userID's like on the comment, keeping Likes equal to the
// size of LikedBy. Calling it twice with the same arguments restores the
// prior state. Unknown comment ids and empty user ids are ignored.
func (s *CommentStore) ToggleLike(ctx context.Context, commentID, userID string) (*models.Comment, error) {
	if userID == "" {
		return nil, nil
	}

	all, err := s.partitions(ctx)
	if err != nil {
		return nil, err
	}
	for key, comments := range all {
		for i := range comments {
			if comments[i].ID != commentID {
				continue
			}
			if comments[i].LikedByUser(userID) {
				likedBy := make([]string, 0, len(comments[i].LikedBy))
				for _, id := range comments[i].LikedBy {
					if id != userID {
						likedBy = append(likedBy, id)
					}
				}
				comments[i].LikedBy = likedBy
			} else {
				comments[i].LikedBy = append(comments[i].LikedBy, userID)
			}
			comments[i].Likes = len(comments[i].LikedBy)
			all[key] = comments
			if err := s.save(ctx, all); err != nil {
				return nil, err
			}
			toggled := comments[i]
			return &toggled, nil
		}
	}
	return nil, nil
}

// List returns a copy of the partition sorted by creation time. Ordering is a
// read-time concern only and is never written back.
func (s *CommentStore) List(ctx context.Context, contentKey string, newestFirst bool) ([]models.Comment, error) {
	all, err := s.partitions(ctx)
	if err != nil {
		return nil, err
	}
	comments := all[partitionKey(contentKey)]
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// partitions loads the full mapping. A missing or unparsable value reads as
// an empty mapping; any other backend fault is returned.
func (s *CommentStore) partitions(ctx context.Context) (map[string][]models.Comment, error) {
	raw, err := s.store.Get(ctx, commentsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string][]models.Comment{}, nil
	}
	if err != nil {
		return nil, err
	}
	var all map[string][]models.Comment
	if err := json.Unmarshal(raw, &all); err != nil || all == nil {
		return map[string][]models.Comment{}, nil
	}
	return all, nil
}

func (s *CommentStore) save(ctx context.Context, all map[string][]models.Comment) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, commentsKey, raw)
}

func partitionKey(contentKey string) string {
	if contentKey == "" {
		return defaultPartition
	}
	return contentKey
}

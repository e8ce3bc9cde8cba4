package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/repositories"
	"github.com/google/uuid"
)

// PostService orchestrates the post lifecycle: the daily-post gate, the
// pseudonym uniqueness check, the post insert, the streak advancement, and
// the cascade delete. The steps are sequential writes against the store,
// not a transaction, so a crash mid-sequence can leave a post without a
// streak update; every step is idempotent and safe to retry.
type PostService struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	clock    clock.Clock
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	clk clock.Clock,
) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		likes:    likes,
		comments: comments,
		clock:    clk,
	}
}

// HasPostedToday reports whether the user already owns a post made since
// local midnight. CanPost is its complement over the same day boundary.
func (s *PostService) HasPostedToday(ctx context.Context, userID string) (bool, error) {
	startOfDay := s.clock.StartOfDay(s.clock.Now())
	return s.posts.ExistsSince(ctx, userID, startOfDay)
}

// CanPost reports whether the user may create a post today. Pure read; no
// side effects.
func (s *PostService) CanPost(ctx context.Context, userID string) (bool, error) {
	posted, err := s.HasPostedToday(ctx, userID)
	if err != nil {
		return false, err
	}
	return !posted, nil
}

// CreatePost runs the full creation flow:
//
//  1. daily-post gate — a same-day post fails with ErrAlreadyPostedToday
//  2. pseudonym uniqueness — a different owner fails with ErrPseudonymTaken,
//     otherwise the identity record is upserted (streak fields untouched)
//  3. the post is inserted with a pseudonym snapshot and its day key; the
//     store's unique (userId, postDay) index catches a concurrent same-day
//     create that slipped past the gate read in step 1
//  4. the user's streak is advanced and the record written back with a
//     compare-and-swap on the lastPostDate it was computed from
func (s *PostService) CreatePost(ctx context.Context, userID, pseudonym string, req models.CreatePostRequest) (*models.Post, error) {
	canPost, err := s.CanPost(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking daily post gate: %w", err)
	}
	if !canPost {
		return nil, apperror.AlreadyPostedToday()
	}

	if err := s.claimPseudonym(ctx, userID, pseudonym); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	post := &models.Post{
		ID:            uuid.NewString(),
		UserID:        userID,
		UserPseudonym: pseudonym,
		Timestamp:     now,
		PostDay:       s.dayKey(now),
		MusicTitle:    req.MusicTitle,
		ArtistName:    req.ArtistName,
		SpotifyID:     req.SpotifyID,
		CoverArtURL:   req.CoverArtURL,
		SpotifyURL:    req.SpotifyURL,
		IsAlbum:       req.IsAlbum,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		if errors.Is(err, apperror.ErrAlreadyPostedToday) {
			return nil, err
		}
		return nil, fmt.Errorf("inserting post: %w", err)
	}

	if err := s.advanceUserStreak(ctx, userID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// claimPseudonym verifies the pseudonym is not owned by someone else, then
// upserts the users-by-pseudonym identity record for this user.
func (s *PostService) claimPseudonym(ctx context.Context, userID, pseudonym string) error {
	owner, err := s.users.GetUserByPseudonym(ctx, pseudonym)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking pseudonym owner: %w", err)
	}
	if owner != nil && owner.ID != userID {
		return apperror.PseudonymTaken(pseudonym)
	}
	if err := s.users.UpsertIdentity(ctx, userID, pseudonym); err != nil {
		return fmt.Errorf("upserting user identity: %w", err)
	}
	return nil
}

// streakUpdateRetries bounds the compare-and-swap loop on the user record.
const streakUpdateRetries = 3

// dayKey is the local calendar day an instant falls on, the second half of
// the store's one-post-per-day uniqueness key.
func (s *PostService) dayKey(t time.Time) string {
	return s.clock.StartOfDay(t).Format("2006-01-02")
}

// advanceUserStreak is the read-modify-write on the user record, persisted
// with a swap conditional on the lastPostDate the new counters were
// computed from. Losing the swap means another writer touched the record;
// the loop re-reads and recomputes, and the same-day no-op in AdvanceStreak
// keeps a retry from double-counting. A missing user record is skipped
// rather than fatal: the post itself already exists and the streak will
// self-correct on the next registration write.
func (s *PostService) advanceUserStreak(ctx context.Context, userID string, post *models.Post) error {
	for attempt := 0; attempt < streakUpdateRetries; attempt++ {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("loading user for streak update: %w", err)
		}

		expected := user.LastPostDate
		if !AdvanceStreak(user, post.Timestamp, s.clock) {
			return nil
		}

		err = s.users.UpdateUser(ctx, user, expected)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperror.ErrConflict) {
			return fmt.Errorf("persisting streak update: %w", err)
		}
	}
	return apperror.Conflict("user", userID)
}

// DeletePost removes a post and its dependent likes and comments. Only the
// owner may delete. The cascade is sequential and not rolled back on a
// partial failure; each delete is a no-op when the record is already gone,
// so re-running the call is the recovery. Streak counters are never
// decremented by deletion: the streak reflects posting history, not the
// current post inventory.
func (s *PostService) DeletePost(ctx context.Context, postID, requestingUserID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requestingUserID {
		return apperror.Unauthorized("only the owner can delete a post")
	}

	if err := s.likes.DeleteAllForPost(ctx, postID); err != nil {
		return fmt.Errorf("deleting likes for post: %w", err)
	}
	if err := s.comments.DeleteAllForPost(ctx, postID); err != nil {
		return fmt.Errorf("deleting comments for post: %w", err)
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// Feed returns the newest posts across all users.
func (s *PostService) Feed(ctx context.Context, limit int64) ([]models.Post, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.posts.GetAllPosts(ctx, limit)
}

// UserPosts returns a user's posts, newest first.
func (s *PostService) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.GetPostsByUserID(ctx, userID)
}

// GetPost loads a single post by id.
func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, postID)
}

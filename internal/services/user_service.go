package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/repositories"
)

// UserService covers registration, profile edits, streak reads and the
// full-account cascade delete.
type UserService struct {
	users    repositories.UserRepository
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	follows  repositories.FollowRepository
	clock    clock.Clock
}

// NewUserService creates a new UserService
func NewUserService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	follows repositories.FollowRepository,
	clk clock.Clock,
) *UserService {
	return &UserService{
		users:    users,
		posts:    posts,
		likes:    likes,
		comments: comments,
		follows:  follows,
		clock:    clk,
	}
}

// Register creates the user record for a freshly authenticated account.
// The pseudonym must not belong to another user.
func (s *UserService) Register(ctx context.Context, userID string, req models.RegisterUserRequest) (*models.User, error) {
	owner, err := s.users.GetUserByPseudonym(ctx, req.Pseudonym)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking pseudonym owner: %w", err)
	}
	if owner != nil && owner.ID != userID {
		return nil, apperror.PseudonymTaken(req.Pseudonym)
	}

	if err := s.users.UpsertIdentity(ctx, userID, req.Pseudonym); err != nil {
		return nil, fmt.Errorf("upserting user identity: %w", err)
	}
	if req.ProfilePictureURL != "" {
		pic := req.ProfilePictureURL
		if err := s.users.UpdateProfile(ctx, userID, req.Pseudonym, &pic); err != nil {
			return nil, fmt.Errorf("storing profile picture: %w", err)
		}
	}
	return s.users.GetUserByID(ctx, userID)
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// PseudonymAvailable reports whether no user currently owns the pseudonym.
func (s *UserService) PseudonymAvailable(ctx context.Context, pseudonym string) (bool, error) {
	_, err := s.users.GetUserByPseudonym(ctx, pseudonym)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// UserIDForPseudonym resolves a pseudonym to its owner's id, used for
// account recovery.
func (s *UserService) UserIDForPseudonym(ctx context.Context, pseudonym string) (string, error) {
	user, err := s.users.GetUserByPseudonym(ctx, pseudonym)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// UpdateProfile renames the user and optionally replaces the profile
// picture. A rename to a pseudonym owned by someone else fails with
// ErrPseudonymTaken. Posts and comments keep their pseudonym snapshots;
// they are not rewritten.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	current, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current.Pseudonym != req.Pseudonym {
		available, err := s.PseudonymAvailable(ctx, req.Pseudonym)
		if err != nil {
			return nil, fmt.Errorf("checking pseudonym availability: %w", err)
		}
		if !available {
			return nil, apperror.PseudonymTaken(req.Pseudonym)
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, req.Pseudonym, req.ProfilePictureURL); err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}

// Streak returns the stored counters plus the derived active streak.
func (s *UserService) Streak(ctx context.Context, userID string) (*models.StreakResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.StreakResponse{
		UserID:        user.ID,
		CurrentStreak: user.CurrentStreak,
		ActiveStreak:  ActiveStreak(user, s.clock.Now(), s.clock),
		LongestStreak: user.LongestStreak,
		LastPostDate:  user.LastPostDate,
	}, nil
}

// DeleteAccount removes everything the user owns: each post with its likes
// and comments, then the user's own likes and comments on other posts,
// follow records in both directions, and finally the user record. The
// steps are sequential, not transactional; every delete tolerates absent
// records, so re-running after a partial failure finishes the cleanup.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	posts, err := s.posts.GetPostsByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing posts for account delete: %w", err)
	}
	for _, post := range posts {
		if err := s.likes.DeleteAllForPost(ctx, post.ID); err != nil {
			return fmt.Errorf("deleting likes for post %s: %w", post.ID, err)
		}
		if err := s.comments.DeleteAllForPost(ctx, post.ID); err != nil {
			return fmt.Errorf("deleting comments for post %s: %w", post.ID, err)
		}
		if err := s.posts.DeletePost(ctx, post.ID); err != nil {
			return fmt.Errorf("deleting post %s: %w", post.ID, err)
		}
	}

	if err := s.follows.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting follows: %w", err)
	}
	if err := s.likes.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting likes: %w", err)
	}
	if err := s.comments.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("deleting user record: %w", err)
	}
	return nil
}

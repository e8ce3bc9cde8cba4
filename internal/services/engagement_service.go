package services

import (
	"context"
	"strings"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/models"
	"github.com/enzogallo/discover-backend/internal/repositories"
	"github.com/google/uuid"
)

// EngagementService covers likes, comments and follows. Likes and follows
// are toggle relations: repeating the same action alternates between
// creating and removing the one permitted record for the pair.
type EngagementService struct {
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	follows  repositories.FollowRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	clock    clock.Clock
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	follows repositories.FollowRepository,
	posts repositories.PostRepository,
	users repositories.UserRepository,
	clk clock.Clock,
) *EngagementService {
	return &EngagementService{
		likes:    likes,
		comments: comments,
		follows:  follows,
		posts:    posts,
		users:    users,
		clock:    clk,
	}
}

// ToggleLike flips the user's like on a post and returns whether the like
// now exists. The post must exist.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, userID, postID, s.clock.Now())
}

// LikeCount returns the live like count of a post.
func (s *EngagementService) LikeCount(ctx context.Context, postID string) (int64, error) {
	return s.likes.CountByPostID(ctx, postID)
}

// IsLiked reports whether the user currently likes the post.
func (s *EngagementService) IsLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.likes.IsLiked(ctx, userID, postID)
}

// AddComment appends a comment to a post with a pseudonym snapshot of the
// author. The text is trimmed and must be non-empty afterwards.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("comment text must not be empty")
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:            uuid.NewString(),
		UserID:        userID,
		UserPseudonym: author.Pseudonym,
		PostID:        postID,
		Text:          text,
		Timestamp:     s.clock.Now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments lists a post's comments in chronological order.
func (s *EngagementService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.GetCommentsByPostID(ctx, postID)
}

// CommentCount returns the live comment count of a post.
func (s *EngagementService) CommentCount(ctx context.Context, postID string) (int64, error) {
	return s.comments.CountByPostID(ctx, postID)
}

// ToggleFollow flips the directed follow relation and returns whether it
// now exists. The data model would permit a self-follow; the service
// rejects it.
func (s *EngagementService) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == followingID {
		return false, apperror.ValidationFailed("cannot follow yourself")
	}
	if _, err := s.users.GetUserByID(ctx, followingID); err != nil {
		return false, err
	}
	return s.follows.Toggle(ctx, followerID, followingID, s.clock.Now())
}

// IsFollowing reports whether followerID currently follows followingID.
func (s *EngagementService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followingID)
}

// FollowerCount returns how many users follow userID.
func (s *EngagementService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.FollowerCount(ctx, userID)
}

// FollowingCount returns how many users userID follows.
func (s *EngagementService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.FollowingCount(ctx, userID)
}

// FollowerIDs lists the ids of users following userID.
func (s *EngagementService) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.follows.FollowerIDs(ctx, userID)
}

// FollowingIDs lists the ids of users userID follows.
func (s *EngagementService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return s.follows.FollowingIDs(ctx, userID)
}

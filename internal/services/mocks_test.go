package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/enzogallo/discover-backend/internal/apperror"
	"github.com/enzogallo/discover-backend/internal/models"
)

// In-memory fakes for the repository interfaces. Each stores copies so a
// test cannot mutate repository state through a returned pointer. A non-nil
// forcedErr makes every call fail, to exercise error propagation.

type memUserRepo struct {
	users     map[string]models.User
	forcedErr error
	// conflicts makes the next N UpdateUser calls lose the swap, as if a
	// concurrent writer changed the record every time.
	conflicts int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (m *memUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := u
	return &copied, nil
}

func (m *memUserRepo) GetUserByPseudonym(_ context.Context, pseudonym string) (*models.User, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	for _, u := range m.users {
		if u.Pseudonym == pseudonym {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", pseudonym)
}

func (m *memUserRepo) UpsertIdentity(_ context.Context, id, pseudonym string) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if u, ok := m.users[id]; ok {
		u.Pseudonym = pseudonym
		m.users[id] = u
		return nil
	}
	m.users[id] = models.User{ID: id, Pseudonym: pseudonym, CreatedAt: time.Now()}
	return nil
}

func (m *memUserRepo) UpdateUser(_ context.Context, user *models.User, expectedLastPostDate *time.Time) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	if m.conflicts > 0 {
		m.conflicts--
		return apperror.Conflict("user", user.ID)
	}
	stored, ok := m.users[user.ID]
	if !ok || !sameInstant(stored.LastPostDate, expectedLastPostDate) {
		return apperror.Conflict("user", user.ID)
	}
	m.users[user.ID] = *user
	return nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (m *memUserRepo) UpdateProfile(_ context.Context, id, pseudonym string, profilePictureURL *string) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Pseudonym = pseudonym
	if profilePictureURL != nil {
		u.ProfilePictureURL = *profilePictureURL
	}
	m.users[id] = u
	return nil
}

func (m *memUserRepo) DeleteUser(_ context.Context, id string) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	delete(m.users, id)
	return nil
}

type memPostRepo struct {
	posts     map[string]models.Post
	forcedErr error
	// staleReads makes ExistsSince report no posts, like a gate read that
	// raced a concurrent insert.
	staleReads bool
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]models.Post)}
}

func (m *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	// same uniqueness the store's (userId, postDay) index enforces
	for _, p := range m.posts {
		if p.UserID == post.UserID && p.PostDay == post.PostDay {
			return apperror.AlreadyPostedToday()
		}
	}
	m.posts[post.ID] = *post
	return nil
}

func (m *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", id)
	}
	copied := p
	return &copied, nil
}

func (m *memPostRepo) GetAllPosts(_ context.Context, limit int64) ([]models.Post, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	all := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memPostRepo) GetPostsByUserID(_ context.Context, userID string) ([]models.Post, error) {
	if m.forcedErr != nil {
		return nil, m.forcedErr
	}
	mine := []models.Post{}
	for _, p := range m.posts {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].Timestamp.After(mine[j].Timestamp) })
	return mine, nil
}

func (m *memPostRepo) ExistsSince(_ context.Context, userID string, since time.Time) (bool, error) {
	if m.forcedErr != nil {
		return false, m.forcedErr
	}
	if m.staleReads {
		return false, nil
	}
	for _, p := range m.posts {
		if p.UserID == userID && !p.Timestamp.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPostRepo) DeletePost(_ context.Context, id string) error {
	if m.forcedErr != nil {
		return m.forcedErr
	}
	delete(m.posts, id)
	return nil
}

type memLikeRepo struct {
	likes map[string]models.Like
}

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{likes: make(map[string]models.Like)}
}

func (m *memLikeRepo) Toggle(_ context.Context, userID, postID string, at time.Time) (bool, error) {
	key := userID + ":" + postID
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = models.Like{ID: key, UserID: userID, PostID: postID, Timestamp: at}
	return true, nil
}

func (m *memLikeRepo) CountByPostID(_ context.Context, postID string) (int64, error) {
	var n int64
	for _, l := range m.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memLikeRepo) IsLiked(_ context.Context, userID, postID string) (bool, error) {
	_, ok := m.likes[userID+":"+postID]
	return ok, nil
}

func (m *memLikeRepo) DeleteAllForPost(_ context.Context, postID string) error {
	for key, l := range m.likes {
		if l.PostID == postID {
			delete(m.likes, key)
		}
	}
	return nil
}

func (m *memLikeRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for key, l := range m.likes {
		if l.UserID == userID {
			delete(m.likes, key)
		}
	}
	return nil
}

type memCommentRepo struct {
	comments []models.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{}
}

func (m *memCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memCommentRepo) CountByPostID(_ context.Context, postID string) (int64, error) {
	var n int64
	for _, c := range m.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memCommentRepo) DeleteAllForPost(_ context.Context, postID string) error {
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

func (m *memCommentRepo) DeleteAllForUser(_ context.Context, userID string) error {
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

type memFollowRepo struct {
	follows map[string]models.Follow
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{follows: make(map[string]models.Follow)}
}

func (m *memFollowRepo) Toggle(_ context.Context, followerID, followingID string, at time.Time) (bool, error) {
	key := followerID + ":" + followingID
	if _, ok := m.follows[key]; ok {
		delete(m.follows, key)
		return false, nil
	}
	m.follows[key] = models.Follow{ID: key, FollowerID: followerID, FollowingID: followingID, Timestamp: at}
	return true, nil
}

func (m *memFollowRepo) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	_, ok := m.follows[followerID+":"+followingID]
	return ok, nil
}

func (m *memFollowRepo) FollowerCount(_ context.Context, userID string) (int64, error) {
	ids, _ := m.FollowerIDs(context.Background(), userID)
	return int64(len(ids)), nil
}

func (m *memFollowRepo) FollowingCount(_ context.Context, userID string) (int64, error) {
	ids, _ := m.FollowingIDs(context.Background(), userID)
	return int64(len(ids)), nil
}

func (m *memFollowRepo) FollowerIDs(_ context.Context, userID string) ([]string, error) {
	ids := []string{}
	for _, f := range m.follows {
		if f.FollowingID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memFollowRepo) FollowingIDs(_ context.Context, userID string) ([]string, error) {
	ids := []string{}
	for _, f := range m.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowingID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memFollowRepo) DeleteAllForUser(_ context.Context, userID string) error {
	for key := range m.follows {
		parts := strings.SplitN(key, ":", 2)
		if parts[0] == userID || parts[1] == userID {
			delete(m.follows, key)
		}
	}
	return nil
}

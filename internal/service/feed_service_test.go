package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
)

type memFeedStore struct {
	feeds []model.Feed
}

func (m *memFeedStore) PaginateByOwner(ownerID uint64, offset, limit int) ([]model.Feed, int64, error) {
	var rows []model.Feed
	for _, f := range m.feeds {
		if f.UserID == ownerID {
			rows = append(rows, f)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

type memPostStore struct {
	feeds      *memFeedStore
	posts      map[uint64]*model.Post
	nextPostID uint64
	nextFeedID uint64
}

func (m *memPostStore) FindByID(id uint64) (*model.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *memPostStore) CreateWithFanout(post *model.Post, recipientIDs []uint64) error {
	m.nextPostID++
	post.ID = m.nextPostID
	post.CreatedAt = time.Now()
	if m.posts == nil {
		m.posts = make(map[uint64]*model.Post)
	}
	cp := *post
	m.posts[post.ID] = &cp

	owners := append([]uint64{post.AuthorID}, recipientIDs...)
	seen := make(map[uint64]bool)
	for _, owner := range owners {
		if seen[owner] {
			continue
		}
		seen[owner] = true
		m.nextFeedID++
		m.feeds.feeds = append(m.feeds.feeds, model.Feed{
			ID:        m.nextFeedID,
			UserID:    owner,
			PostID:    post.ID,
			Post:      *post,
			CreatedAt: post.CreatedAt,
		})
	}
	return nil
}

func newFeedFixture(store *memStore) (*FeedService, *memFeedStore) {
	feeds := &memFeedStore{}
	posts := &memPostStore{feeds: feeds}
	return NewFeedService(feeds, posts, store), feeds
}

func TestFeedOrdering(t *testing.T) {
	feeds := &memFeedStore{}
	svc := NewFeedService(feeds, &memPostStore{feeds: feeds}, newMemStore(1))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	feeds.feeds = []model.Feed{
		{ID: 1, UserID: 1, PostID: 1, CreatedAt: base},
		{ID: 2, UserID: 1, PostID: 2, CreatedAt: base.Add(time.Minute)},
		// 和上一条同一时刻，id 倒序打破并列
		{ID: 3, UserID: 1, PostID: 3, CreatedAt: base.Add(time.Minute)},
		{ID: 4, UserID: 2, PostID: 4, CreatedAt: base.Add(time.Hour)},
	}

	p, err := svc.Paginate(1, 1, 10)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if p.Total != 3 {
		t.Fatalf("total = %d, want 3 (other user's rows leaked?)", p.Total)
	}
	wantOrder := []uint64{3, 2, 1}
	for i, want := range wantOrder {
		if p.List[i].ID != want {
			t.Errorf("row %d id = %d, want %d", i, p.List[i].ID, want)
		}
	}
}

func TestFeedOutOfRangeAndInvalid(t *testing.T) {
	feeds := &memFeedStore{feeds: []model.Feed{
		{ID: 1, UserID: 1, PostID: 1, CreatedAt: time.Now()},
	}}
	svc := NewFeedService(feeds, &memPostStore{feeds: feeds}, newMemStore(1))

	p, err := svc.Paginate(1, 5, 10)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(p.List) != 0 || p.Total != 1 {
		t.Errorf("out-of-range page: %d items, total %d; want 0 items, total 1", len(p.List), p.Total)
	}

	if _, err = svc.Paginate(1, 0, 10); !errors.Is(err, pkg.ErrInvalidPage) {
		t.Errorf("page 0 err = %v, want ErrInvalidPage", err)
	}
	if _, err = svc.Paginate(1, 1, -1); !errors.Is(err, pkg.ErrInvalidLimit) {
		t.Errorf("negative limit err = %v, want ErrInvalidLimit", err)
	}
}

func TestCreatePostFanout(t *testing.T) {
	store := newMemStore(1, 2, 3, 4)
	follower := newFollowerService(store)
	ctx := context.Background()

	// 2 是已接受好友，3 只是 pending，4 没有关系
	if err := follower.Send(ctx, 1, 2); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := follower.Accept(ctx, 2, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := follower.Send(ctx, 1, 3); err != nil {
		t.Fatalf("send: %v", err)
	}

	svc, feeds := newFeedFixture(store)
	post, err := svc.CreatePost(1, "hello world")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 || post.AuthorID != 1 {
		t.Fatalf("post not persisted: %+v", post)
	}

	owners := make(map[uint64]bool)
	for _, f := range feeds.feeds {
		if f.PostID != post.ID {
			t.Errorf("stray feed row: %+v", f)
		}
		if owners[f.UserID] {
			t.Errorf("duplicate feed row for owner %d", f.UserID)
		}
		owners[f.UserID] = true
	}
	if !owners[1] || !owners[2] {
		t.Errorf("author and accepted friend must receive the post, got owners %v", owners)
	}
	if owners[3] || owners[4] {
		t.Errorf("pending/unrelated users must not receive the post, got owners %v", owners)
	}
}

func TestCreatePostEmptyContent(t *testing.T) {
	svc, _ := newFeedFixture(newMemStore(1))
	if _, err := svc.CreatePost(1, ""); err == nil {
		t.Error("empty content must fail")
	}
}

func TestGetPost(t *testing.T) {
	svc, _ := newFeedFixture(newMemStore(1))
	created, err := svc.CreatePost(1, "hello")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := svc.GetPost(created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Content != "hello" || got.AuthorID != 1 {
		t.Errorf("post mismatch: %+v", got)
	}

	if _, err = svc.GetPost(999); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("missing post err = %v, want ErrPostNotFound", err)
	}
}

func TestOutboxRelayerDrain(t *testing.T) {
	repo := &memOutbox{rows: []model.FollowerOutbox{
		{ID: 1, EventType: "request", FollowerUser: 1, FollowedUser: 2, Payload: `{"a":1}`},
		{ID: 2, EventType: "accept", FollowerUser: 1, FollowedUser: 2, Payload: `{"a":2}`},
	}}
	var sent []uint64
	relayer := NewOutboxRelayer(repo, func(_ context.Context, ob *model.FollowerOutbox) error {
		if ob.ID == 1 {
			return errors.New("broker down")
		}
		sent = append(sent, ob.ID)
		return nil
	})

	relayer.drainOnce(context.Background())
	if len(sent) != 1 || sent[0] != 2 {
		t.Fatalf("first drain sent %v, want [2]", sent)
	}
	if repo.rows[0].Retry != 1 || repo.rows[0].Status != 2 {
		t.Errorf("failed row not marked for retry: %+v", repo.rows[0])
	}
	if repo.rows[1].Status != 1 {
		t.Errorf("delivered row not marked done: %+v", repo.rows[1])
	}

	// 失败的行已出列（status=2），不会在后续轮次里重复投递
	relayer.drainOnce(context.Background())
	if len(sent) != 1 {
		t.Fatalf("second drain re-sent rows: %v", sent)
	}
}

type memOutbox struct {
	rows []model.FollowerOutbox
}

func (m *memOutbox) List(_ context.Context, batchSize int) ([]model.FollowerOutbox, error) {
	var pending []model.FollowerOutbox
	for _, r := range m.rows {
		if r.Status == 0 && len(pending) < batchSize {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (m *memOutbox) RetryUpdate(_ context.Context, id uint64) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = 2
			m.rows[i].Retry++
		}
	}
	return nil
}

func (m *memOutbox) SuccessUpdate(_ context.Context, id uint64) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = 1
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"
)

// FollowerStore 关系记录的存储协作方。Send/Accept 要求原子的“检查并写入”
type FollowerStore interface {
	Send(ctx context.Context, requesterID, targetID uint64) (*model.Follower, error)
	Accept(ctx context.Context, actorID, requesterID uint64) (*model.Follower, error)
	FindByPair(ctx context.Context, aID, bID uint64) (*model.Follower, error)
}

// UserDirectory 用户目录查询层：解析单个用户或成批用户并挂上关系记录
type UserDirectory interface {
	FindByID(id uint64) (*model.User, error)
	FindOneWithFollower(viewerID, subjectID uint64) (*model.User, error)
	FindAllWithFollower(viewerID uint64, acceptedOnly bool) (map[uint64]*model.User, error)
	PaginateAllWithFollower(viewerID uint64, acceptedOnly bool, offset, limit int) ([]model.User, int64, error)
}

type FollowerService struct {
	store FollowerStore
	users UserDirectory
	cache *redis.RelationCacheRepository // 可为 nil（测试/缓存降级）
}

// ProfileView 资料页响应：subject 本人的视图 + subject 的好友列表
// （好友以 subject 的视角标注，和原页面一致）
type ProfileView struct {
	Item    model.UserInfo   `json:"item"`
	Friends []model.UserInfo `json:"friends"`
}

func NewFollowerService(store FollowerStore, users UserDirectory, cache *redis.RelationCacheRepository) *FollowerService {
	return &FollowerService{store: store, users: users, cache: cache}
}

// Send 发送好友请求。同一对用户已有任何记录（不论方向、状态）时返回
// model.ErrFollowerAlreadyExists
func (s *FollowerService) Send(ctx context.Context, requesterID, targetID uint64) error {
	if requesterID == 0 || targetID == 0 {
		return errors.New("invalid user id")
	}
	if requesterID == targetID {
		return model.ErrSelfFollower
	}
	if _, err := s.users.FindByID(targetID); err != nil {
		return err
	}
	if _, err := s.store.Send(ctx, requesterID, targetID); err != nil {
		return err
	}
	s.invalidate(ctx, requesterID, targetID)
	return nil
}

// Accept 接受 requesterID 发来的请求。没发过、已接受、自己不是接收方，
// 统一返回 model.ErrFollowerNotFound
func (s *FollowerService) Accept(ctx context.Context, actorID, requesterID uint64) error {
	if actorID == 0 || requesterID == 0 {
		return errors.New("invalid user id")
	}
	if _, err := s.users.FindByID(requesterID); err != nil {
		return err
	}
	if _, err := s.store.Accept(ctx, actorID, requesterID); err != nil {
		return err
	}
	s.invalidate(ctx, actorID, requesterID)
	return nil
}

// Relation 观察者视角下与 subject 的关系视图。subject 不存在时返回
// model.ErrUserNotFound
func (s *FollowerService) Relation(ctx context.Context, viewerID, subjectID uint64) (model.RelationInfo, error) {
	if viewerID == subjectID {
		// 自己对自己不存在关系记录
		if _, err := s.users.FindByID(subjectID); err != nil {
			return model.RelationInfo{}, err
		}
		return model.Resolve(nil, viewerID, subjectID), nil
	}

	if _, err := s.users.FindByID(subjectID); err != nil {
		return model.RelationInfo{}, err
	}

	// 先查缓存，命中则不回源
	if s.cache != nil {
		if status, initiator, ok, err := s.cache.GetStatus(ctx, viewerID, subjectID); err == nil && ok {
			return model.Resolve(cachedFollower(status, initiator, viewerID, subjectID), viewerID, subjectID), nil
		}
	}

	rel, err := s.store.FindByPair(ctx, viewerID, subjectID)
	if err != nil {
		return model.RelationInfo{}, err
	}
	if s.cache != nil {
		if rel == nil {
			_ = s.cache.SetStatus(ctx, viewerID, subjectID, redis.RelationNone, 0)
		} else {
			_ = s.cache.SetStatus(ctx, viewerID, subjectID, rel.Status, rel.FollowerUserID)
		}
	}
	return model.Resolve(rel, viewerID, subjectID), nil
}

// Profile 资料页：subject 信息（以 viewer 视角标注）加 subject 的已接受好友
// （以 subject 视角标注），好友按 id 升序
func (s *FollowerService) Profile(ctx context.Context, viewerID, subjectID uint64) (*ProfileView, error) {
	subject, err := s.users.FindOneWithFollower(viewerID, subjectID)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.FindAllWithFollower(subject.ID, true)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(friends))
	for id := range friends {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	view := &ProfileView{
		Item:    subject.Info(viewerID),
		Friends: make([]model.UserInfo, 0, len(ids)),
	}
	for _, id := range ids {
		view.Friends = append(view.Friends, friends[id].Info(subject.ID))
	}
	return view, nil
}

// Paginate 带关系标注的用户列表，1 起页码。页码/容量非法时报错，
// 越界页返回空列表和正确的 total
func (s *FollowerService) Paginate(ctx context.Context, viewerID uint64, acceptedOnly bool, page, limit int) (pkg.Pagination[model.UserInfo], error) {
	offset, err := pkg.Window(page, limit)
	if err != nil {
		return pkg.Pagination[model.UserInfo]{}, err
	}

	users, total, err := s.users.PaginateAllWithFollower(viewerID, acceptedOnly, offset, limit)
	if err != nil {
		return pkg.Pagination[model.UserInfo]{}, err
	}

	infos := make([]model.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].Info(viewerID))
	}
	return pkg.NewPagination(infos, page, limit, total), nil
}

func (s *FollowerService) invalidate(ctx context.Context, aID, bID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, aID, bID); err != nil {
		log.Printf("relation cache invalidate err: %v", err)
	}
}

// cachedFollower 由缓存编码还原出可供 Resolve 使用的记录
func cachedFollower(status int8, initiator, viewerID, subjectID uint64) *model.Follower {
	if status == redis.RelationNone {
		return nil
	}
	other := subjectID
	if initiator == subjectID {
		other = viewerID
	}
	return &model.Follower{
		FollowerUserID: initiator,
		FollowedUserID: other,
		Status:         status,
	}
}

/*
outbox 投递
*/

type Sender func(ctx context.Context, ob *model.FollowerOutbox) error

// OutboxStore outbox 表的存储协作方
type OutboxStore interface {
	List(ctx context.Context, batchSize int) ([]model.FollowerOutbox, error)
	RetryUpdate(ctx context.Context, id uint64) error
	SuccessUpdate(ctx context.Context, id uint64) error
}

// OutboxRelayer 周期性地把 send/accept 落库的事件投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo OutboxStore, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox 启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

// 从数据库批量读事件，逐条投递并更新状态
func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 把事件写到 Kafka，分区键取发起方
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.FollowerOutbox) error {
		return p.Send(ctx, pkg.PairKey(ob.FollowerUser), []byte(ob.Payload))
	}
}

// LogSender 默认 sender（占位）：本地开发没有 Kafka 时先打印
func LogSender(ctx context.Context, ob *model.FollowerOutbox) error {
	log.Printf("OUTBOX SEND type=%s follower=%d followed=%d payload=%s",
		ob.EventType, ob.FollowerUser, ob.FollowedUser, ob.Payload)
	return nil
}

// 编译期确认 GORM 仓储满足接口
var (
	_ FollowerStore = (*mysql.FollowerRepository)(nil)
	_ UserDirectory = (*mysql.UserRepository)(nil)
	_ OutboxStore   = (*mysql.OutboxRepository)(nil)
)

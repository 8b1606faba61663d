// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"job_board/internal/model"
	"job_board/internal/repository"
)

// Store keeps every table in memory. Setting Err makes every call fail with it.
type Store struct {
	mu       sync.Mutex
	Err      error
	users    []model.User
	admins   []model.Admin
	notices  map[int64]model.Notice
	counters map[string]int64
	nextID   int64
	clock    time.Time
}

func NewStore() *Store {
	s := &Store{
		notices:  make(map[int64]model.Notice),
		counters: make(map[string]int64),
		clock:    time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, key := range model.StatKeys {
		s.counters[key] = 0
	}
	return s
}

func (s *Store) Users() repository.UserRepository    { return userRepo{s} }
func (s *Store) Admins() repository.AdminRepository  { return adminRepo{s} }
func (s *Store) Notices() repository.NoticeRepository { return noticeRepo{s} }
func (s *Store) Stats() repository.StatsRepository   { return statsRepo{s} }

// Notice returns a stored notice directly, bypassing repository semantics
func (s *Store) Notice(id int64) (model.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notices[id]
	return n, ok
}

// Counter returns the current value of a statistics key
func (s *Store) Counter(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[key]
}

// tick hands out strictly increasing ids and timestamps
func (s *Store) tick() (int64, time.Time) {
	s.nextID++
	s.clock = s.clock.Add(time.Minute)
	return s.nextID, s.clock
}

func (s *Store) userByID(id int) *model.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) withUserName(n model.Notice) model.Notice {
	if u := s.userByID(n.Owner.UserID); u != nil && !n.Owner.IsAdmin() {
		n.UserName = u.Name
	}
	return n
}

func (s *Store) filter(keep func(model.Notice) bool) []model.Notice {
	out := []model.Notice{}
	for _, n := range s.notices {
		if keep(n) {
			out = append(out, s.withUserName(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, u := range r.s.users {
		if u.Phone == user.Phone {
			return repository.ErrDuplicateKey
		}
	}
	id, now := r.s.tick()
	user.ID, user.CreatedAt = int(id), now
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r userRepo) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Phone == phone {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type adminRepo struct{ s *Store }

func (r adminRepo) Create(_ context.Context, admin *model.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, a := range r.s.admins {
		if a.Login == admin.Login {
			return repository.ErrDuplicateKey
		}
	}
	id, now := r.s.tick()
	admin.ID, admin.CreatedAt = int(id), now
	r.s.admins = append(r.s.admins, *admin)
	return nil
}

func (r adminRepo) FindByLogin(_ context.Context, login string) (*model.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, a := range r.s.admins {
		if a.Login == login {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

type noticeRepo struct{ s *Store }

func (r noticeRepo) Create(_ context.Context, n *model.Notice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if !n.Owner.IsAdmin() {
		u := r.s.userByID(n.Owner.UserID)
		if u == nil {
			return repository.ErrOwnerNotFound
		}
		n.PhoneNumber = u.Phone
	}
	n.ID, n.CreatedAt = r.s.tick()
	r.s.notices[n.ID] = *n
	return nil
}

func (r noticeRepo) FindByID(_ context.Context, id int64) (*model.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	n, ok := r.s.notices[id]
	if !ok {
		return nil, nil
	}
	n = r.s.withUserName(n)
	return &n, nil
}

func (r noticeRepo) FindByOwner(_ context.Context, owner model.Owner) ([]model.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.filter(func(n model.Notice) bool {
		if owner.IsAdmin() {
			return n.Owner.IsAdmin()
		}
		return n.Owner.OwnedBy(owner.UserID)
	}), nil
}

func (r noticeRepo) FindByStatus(_ context.Context, status model.NoticeStatus) ([]model.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.filter(func(n model.Notice) bool { return n.Status == status }), nil
}

func (r noticeRepo) Update(_ context.Context, n *model.Notice) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	existing, ok := r.s.notices[n.ID]
	if !ok {
		return false, nil
	}
	existing.Description = n.Description
	existing.Date = n.Date
	existing.Gender = n.Gender
	existing.PhoneNumber = n.PhoneNumber
	existing.Price = n.Price
	existing.Location = n.Location
	existing.JobType = n.JobType
	r.s.notices[n.ID] = existing
	return true, nil
}

func (r noticeRepo) UpdateStatus(_ context.Context, id int64, from, to model.NoticeStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	n, ok := r.s.notices[id]
	if !ok || n.Status != from {
		return false, nil
	}
	n.Status = to
	r.s.notices[id] = n
	return true, nil
}

func (r noticeRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if _, ok := r.s.notices[id]; !ok {
		return false, nil
	}
	delete(r.s.notices, id)
	return true, nil
}

func (r noticeRepo) DeleteOwnedBy(_ context.Context, id int64, userID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	n, ok := r.s.notices[id]
	if !ok || !n.Owner.OwnedBy(userID) {
		return false, nil
	}
	delete(r.s.notices, id)
	return true, nil
}

type statsRepo struct{ s *Store }

func (r statsRepo) Increment(_ context.Context, key string) (int64, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, false, r.s.Err
	}
	if _, ok := r.s.counters[key]; !ok {
		return 0, false, nil
	}
	r.s.counters[key]++
	return r.s.counters[key], true, nil
}

func (r statsRepo) Counters(_ context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[string]int64, len(r.s.counters))
	for k, v := range r.s.counters {
		out[k] = v
	}
	return out, nil
}

func (r statsRepo) Totals(_ context.Context) (*model.Totals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	totals := &model.Totals{Users: int64(len(r.s.users)), Notices: int64(len(r.s.notices))}
	for _, n := range r.s.notices {
		if n.Owner.IsAdmin() {
			totals.AdminNotices++
		}
	}
	return totals, nil
}

package user

import "context"

type StubUserRepo struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{data: map[int]User{}}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.data[user.Id] = user
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	if u, ok := s.data[id]; ok {
		return u, nil
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.data {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range s.data {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) UpdateDisplayName(ctx context.Context, userId int, displayName string) (bool, error) {
	u, ok := s.data[userId]
	if !ok {
		return false, nil
	}
	u.DisplayName = displayName
	s.data[userId] = u
	return true, nil
}

func (s *StubUserRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]User{}
}

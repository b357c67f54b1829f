package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	"github.com/clinicore/go-clinic-server/users"
	"github.com/google/uuid"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[user.Email]; ok {
		return users.EmailTakenErr
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	ur.users[user.ID] = &stored
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, users.NotFoundErr
	}
	user := *ur.users[id]
	return &user, nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	stored, ok := ur.users[id]
	if !ok {
		return nil, users.NotFoundErr
	}
	user := *stored
	return &user, nil
}

func (ur *FakeUserRepo) SetRefreshTokenHash(_ context.Context, id, hash string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return users.NotFoundErr
	}
	user.RefreshTokenHash = hash
	user.UpdatedAt = time.Now()
	return nil
}

func (ur *FakeUserRepo) SwapRefreshTokenHash(_ context.Context, id, current, next string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return users.NotFoundErr
	}
	if user.RefreshTokenHash != current {
		return users.StaleHashErr
	}
	user.RefreshTokenHash = next
	user.UpdatedAt = time.Now()
	return nil
}

func (ur *FakeUserRepo) ClearRefreshTokenHash(_ context.Context, id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return users.NotFoundErr
	}
	user.RefreshTokenHash = ""
	user.UpdatedAt = time.Now()
	return nil
}

package memory

import (
	"assetflow/models"
	"context"
	"sort"

	"github.com/google/uuid"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	defer r.s.lock()()

	for _, existing := range r.s.st.users {
		if existing.Username == user.Username {
			return models.User{}, models.NewConflictError("username %s already exists", user.Username)
		}
		if user.Email != "" && existing.Email == user.Email {
			return models.User{}, models.NewConflictError("email %s already registered", user.Email)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	r.s.st.users[user.ID] = user
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	defer r.s.rlock()()

	user, ok := r.s.st.users[id]
	if !ok {
		return models.User{}, models.NewNotFoundError("user %s not found", id)
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	defer r.s.rlock()()

	for _, user := range r.s.st.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, models.NewNotFoundError("user %s not found", username)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	defer r.s.rlock()()

	for _, user := range r.s.st.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.NewNotFoundError("no user registered with %s", email)
}

func (r *userRepo) LockByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	defer r.s.rlock()()

	users := make([]models.User, 0)
	for _, user := range r.s.st.users {
		if filter.DepartmentID != "" && user.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *userRepo) SetAssignment(ctx context.Context, id uuid.UUID, assignment *models.UserAssignment) error {
	defer r.s.lock()()

	user, ok := r.s.st.users[id]
	if !ok {
		return models.NewNotFoundError("user %s not found", id)
	}
	if assignment == nil {
		user.AssignedAsset, user.AssetName, user.AssetModel, user.AssetID = nil, nil, nil, nil
	} else {
		code, name, model, assetID := assignment.AssetCode, assignment.AssetName, assignment.AssetModel, assignment.AssetID
		user.AssignedAsset, user.AssetName, user.AssetModel, user.AssetID = &code, &name, &model, &assetID
	}
	r.s.st.users[id] = user
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.st.users[id]; !ok {
		return models.NewNotFoundError("user %s not found", id)
	}
	delete(r.s.st.users, id)
	return nil
}

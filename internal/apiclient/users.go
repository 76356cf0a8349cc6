package apiclient

import (
	"context"
	"io"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

// UpdateUserRequest only carries the fields being changed.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type UserAPI interface {
	Me(ctx context.Context) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (*models.User, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) error
	UploadProfilePicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error)
}

type userAPI struct {
	c *Client
}

func NewUserAPI(c *Client) UserAPI {
	return &userAPI{c: c}
}

func (a *userAPI) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.c.get(ctx, "/users/me", "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *userAPI) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := a.c.get(ctx, "/users", "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *userAPI) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := a.c.get(ctx, "/users/:id", idPath("/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *userAPI) Update(ctx context.Context, id uint, req UpdateUserRequest) (*models.User, error) {
	var u models.User
	if err := a.c.patch(ctx, "/users/:id", idPath("/users/%d", id), nil, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *userAPI) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*models.User, error) {
	var u models.User
	if err := a.c.post(ctx, "/users/admin", "/users/admin", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *userAPI) Delete(ctx context.Context, id uint) error {
	return a.c.delete(ctx, "/users/:id", idPath("/users/%d", id), nil)
}

func (a *userAPI) UploadProfilePicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error) {
	var u models.User
	if err := a.c.upload(ctx, "/users/:id/profile-picture", idPath("/users/%d/profile-picture", id), filename, content, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

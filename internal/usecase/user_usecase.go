package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 画像が無いユーザーのアバター
const avatarPlaceholder = "https://avatar.vercel.sh/"

// セッショントークンから取り出した本人情報
type Identity struct {
	ID         string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// 管理者かどうかはここだけで決める
type RolePolicy struct {
	admins map[string]struct{}
}

func NewRolePolicy(adminEmails []string) RolePolicy {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return RolePolicy{admins: admins}
}

func (p RolePolicy) RoleFor(email string) model.Role {
	if _, ok := p.admins[strings.ToLower(strings.TrimSpace(email))]; ok {
		return model.RoleAdmin
	}
	return model.RoleUser
}

type UserUsecase struct {
	userRepo repo.UserRepository
	policy   RolePolicy
	log      *slog.Logger
}

func NewUserUsecase(userRepo repo.UserRepository, policy RolePolicy, log *slog.Logger) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, policy: policy, log: log}
}

// ログイン直後に呼ぶ。無ければ作る（何度呼んでも1件）。
func (u *UserUsecase) EnsureUser(ctx context.Context, id Identity) (model.User, error) {
	if id.ID == "" || id.Email == "" {
		return model.User{}, unauthenticated()
	}

	existing, err := u.userRepo.FindByID(ctx, id.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	picture := id.Picture
	if picture == "" {
		picture = avatarPlaceholder + id.GivenName
	}
	user := model.User{
		ID:           id.ID,
		Email:        id.Email,
		FirstName:    id.GivenName,
		LastName:     id.FamilyName,
		ProfileImage: picture,
		Role:         u.policy.RoleFor(id.Email),
	}

	err = u.userRepo.Create(ctx, user)
	if errors.Is(err, repo.ErrDuplicate) {
		// 同時ログインで先に作られた
		return u.userRepo.FindByID(ctx, id.ID)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	u.log.InfoContext(ctx, "user provisioned", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// 管理系の操作はすべてこれを通す。未登録ユーザーは403。
func (u *UserUsecase) RequireAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return unauthenticated()
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return forbidden()
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user.Role != model.RoleAdmin {
		return forbidden()
	}
	return nil
}

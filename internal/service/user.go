package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UserService struct {
	Users  UserStore
	Orders OrderStore
	Events Publisher
}

// ProfileInput patches the profile; nil fields and empty name or email are
// left alone. A non-nil empty ProfileImage clears it.
type ProfileInput struct {
	Name         *string
	Gmail        *string
	ProfileImage *string
	CreditCard   *models.PaymentInfo
}

type AddressInput struct {
	City    string
	State   string
	Zipcode string
}

var errUserNotFound = fail(ErrNotFound, "User not found")

func userNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return errUserNotFound
	}
	return err
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, userNotFound(err)
	}
	orders, err := s.Orders.GetOrdersByIDs(ctx, user.Orders)
	if err != nil {
		return nil, err
	}
	return &models.Profile{User: *user, Orders: orders}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, error) {
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, userNotFound(err)
	}

	if in.Name != nil && *in.Name != "" {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fail(ErrValidation, "Name cannot be empty")
		}
		user.Name = name
	}
	if in.Gmail != nil && *in.Gmail != "" {
		if !validEmail(*in.Gmail) {
			return nil, fail(ErrValidation, "Invalid email format")
		}
		email := strings.ToLower(*in.Gmail)
		taken, err := s.Users.EmailTaken(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fail(ErrConflict, "Email already in use")
		}
		user.Gmail = email
	}
	if in.ProfileImage != nil {
		if *in.ProfileImage == "" {
			user.ProfileImage = nil
		} else {
			img := *in.ProfileImage
			user.ProfileImage = &img
		}
	}
	if in.CreditCard != nil {
		card := *in.CreditCard
		user.CreditCard = &card
	}

	if err := s.Users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fail(ErrConflict, "Email already in use")
		}
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fail(ErrValidation, "Old and new passwords are required")
	}
	if shortPassword(newPassword) {
		return fail(ErrValidation, "New password must be at least 6 characters")
	}
	if len(newPassword) > maxPasswordBytes {
		return fail(ErrValidation, "New password must be at most 72 bytes")
	}

	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return userNotFound(err)
	}
	if !pkg_hash.CheckPassword(user.Password, oldPassword) {
		return fail(ErrUnauthorized, "Old password is incorrect")
	}

	pwHash, err := pkg_hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = pwHash
	if err := s.Users.SaveUser(ctx, user); err != nil {
		return userNotFound(err)
	}
	logging.FromContext(ctx).Info("password_changed", "svc", "user.password", "user_id", userID)
	return nil
}

func (in AddressInput) validate() (models.Address, error) {
	addr := models.Address{
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zipcode: strings.TrimSpace(in.Zipcode),
	}
	if addr.City == "" || addr.State == "" || addr.Zipcode == "" {
		return addr, fail(ErrValidation, "City, state, and zipcode are required")
	}
	return addr, nil
}

func (s *UserService) AddAddress(ctx context.Context, userID string, in AddressInput) (*models.User, error) {
	addr, err := in.validate()
	if err != nil {
		return nil, err
	}
	addr.ID = uuid.NewString()
	addr.CreatedAt = time.Now().UTC()

	user, err := s.Users.AddAddress(ctx, userID, addr)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, in AddressInput) (*models.User, error) {
	addr, err := in.validate()
	if err != nil {
		return nil, err
	}
	addr.ID = addressID

	user, err := s.Users.UpdateAddress(ctx, userID, addr)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Address not found")
		}
		return nil, err
	}
	return user, nil
}

// RemoveAddress is a no-op for an unknown address.
func (s *UserService) RemoveAddress(ctx context.Context, userID, addressID string) (*models.User, error) {
	user, err := s.Users.RemoveAddress(ctx, userID, addressID)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *UserService) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	if productID == "" {
		return nil, fail(ErrValidation, "Product ID is required")
	}
	user, err := s.Users.AddToWishlist(ctx, userID, productID)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	if productID == "" {
		return nil, fail(ErrValidation, "Product ID is required")
	}
	user, err := s.Users.RemoveFromWishlist(ctx, userID, productID)
	if err != nil {
		return nil, userNotFound(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.ListUsers(ctx)
}

// Delete leaves the user's orders in place; they show a null user afterwards.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.DeleteUser(ctx, id); err != nil {
		return userNotFound(err)
	}
	publish(ctx, s.Events, events.TopicUsers, events.New(events.UserDeleted, id, nil))
	return nil
}

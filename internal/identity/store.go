package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront-app/internal/domain/users"
	"storefront-app/internal/purchase"
)

// Store implements purchase.IdentityStore over the users table.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CurrentBuyer(ctx context.Context, buyerID uint) (*purchase.Buyer, error) {
	if buyerID == 0 {
		return nil, nil
	}

	var user users.User
	err := s.db.WithContext(ctx).Where("id = ?", buyerID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load buyer: %w", err)
	}
	return buyerFromUser(&user), nil
}

func (s *Store) Login(ctx context.Context, creds purchase.Credentials) (*purchase.Buyer, error) {
	var user users.User
	err := s.db.WithContext(ctx).Where("email = ?", creds.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, purchase.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if user.Password == nil {
		// Google-only account; there is no password to check.
		return nil, purchase.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(creds.Password)) != nil {
		return nil, purchase.ErrBadCredentials
	}
	return buyerFromUser(&user), nil
}

// Register creates a local account. purchase.ErrUserExists tells the caller
// to switch the buyer from sign-up to sign-in.
func (s *Store) Register(ctx context.Context, name, lastname, email, password string) (*purchase.Buyer, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&users.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, purchase.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	user := users.User{
		Name:         name,
		Lastname:     lastname,
		Email:        email,
		Password:     &hash,
		AuthProvider: "local",
		Role:         "user",
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return buyerFromUser(&user), nil
}

func buyerFromUser(u *users.User) *purchase.Buyer {
	buyer := &purchase.Buyer{ID: u.ID, Email: u.Email}
	if u.StripeCustomerID != nil {
		buyer.GatewayCustomerID = *u.StripeCustomerID
	}
	return buyer
}

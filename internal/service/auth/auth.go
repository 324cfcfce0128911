package auth

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 64
	maxUsernameLen = 150

	welcomeTimeout = 30 * time.Second
)

type AuthRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByName(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type welcomer interface {
	SendWelcome(ctx context.Context, email, username string) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	authRepo   AuthRepo
	tokenRepo  tokenRepo
	welcomer   welcomer
	mails      sync.WaitGroup
}

func NewAuthService(l logger.Log, manager *JWTManager, aRepo AuthRepo, tRepo tokenRepo, w welcomer) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		authRepo:   aRepo,
		tokenRepo:  tRepo,
		welcomer:   w,
	}
}

func (u *AuthService) RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error) {
	curToken, err := u.jwtManager.Parse(token)
	if err != nil {
		return nil, err
	}
	if !u.jwtManager.TokenType(curToken, RefreshTokenType) {
		return nil, app_errors.ErrInvalidToken
	}
	userIdStr, err := curToken.Claims.GetSubject()
	if err != nil {
		return nil, app_errors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, app_errors.ErrInvalidToken
	}
	tokenRecord, err := u.tokenRepo.ByPrimaryKey(ctx, userID, curToken)
	if err != nil {
		return nil, err
	}
	if tokenRecord.Expired(time.Now()) {
		return nil, app_errors.ErrTokenExpired
	}
	user, err := u.authRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user)
}

func (u *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	tokenPair, err := u.jwtManager.GenerateTokenPair(user.ID, user.Roles)
	if err != nil {
		return nil, err
	}
	if err := u.tokenRepo.DeleteUserTokens(ctx, user.ID); err != nil {
		return nil, err
	}
	if _, err := u.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return nil, err
	}
	return tokenPair, nil
}

func (u *AuthService) ParseToken(ctx context.Context, token string) (*jwt.Token, error) {
	return u.jwtManager.Parse(token)
}

func (u *AuthService) IsAccessToken(ctx context.Context, token *jwt.Token) bool {
	return u.jwtManager.TokenType(token, AccessTokenType)
}

func (u *AuthService) AccessClaims(ctx context.Context, token string) (userID uuid.UUID, roles []string, err error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return claims.UserID, claims.Roles, nil
}

// User returns the account behind the current request.
func (u *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return u.authRepo.UserByID(ctx, id)
}

func (u *AuthService) LoginUser(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	user, err := u.authRepo.UserByName(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", "", err
	}
	if !checkPasswordHash(password, user.Password) {
		return "", "", app_errors.ErrIncorrectPassword
	}
	tokenPair, err := u.issueTokens(ctx, user)
	if err != nil {
		return "", "", err
	}
	accessToken, refreshToken = tokenPair.Strings()
	return accessToken, refreshToken, nil
}

func validateUser(user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return app_errors.NewValidationError("username", "this field is required")
	}
	if len(user.Username) > maxUsernameLen {
		return app_errors.NewValidationError("username", fmt.Sprintf("must be at most %d characters", maxUsernameLen))
	}
	if len(user.Password) < minPasswordLen || len(user.Password) > maxPasswordLen {
		return app_errors.NewValidationError("password", fmt.Sprintf("must be %d to %d characters", minPasswordLen, maxPasswordLen))
	}

	user.Email = strings.TrimSpace(user.Email)
	if user.Email != "" {
		addr, err := mail.ParseAddress(user.Email)
		if err != nil || addr.Address != user.Email {
			return app_errors.NewValidationError("email", "enter a valid email address")
		}
	}

	if len(user.Roles) == 0 {
		user.Roles = []string{models.LearnerRole}
	}
	for _, role := range user.Roles {
		if role != models.LearnerRole && role != models.AuthorRole {
			return app_errors.NewValidationError("roles", "unknown role "+role)
		}
	}
	slices.Sort(user.Roles)
	user.Roles = slices.Compact(user.Roles)
	return nil
}

// CreateUser registers a new account. Once the account is stored a welcome
// mail is sent in the background; delivery problems are logged and never
// affect the registration.
func (u *AuthService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if err := validateUser(&user); err != nil {
		return nil, err
	}

	var err error
	user.Password, err = hashPassword(user.Password)
	if err != nil {
		return nil, err
	}

	createdUser, err := u.authRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	u.log.Info("user registered", "user_id", createdUser.ID, "username", createdUser.Username)

	if u.welcomer != nil {
		u.sendWelcome(context.WithoutCancel(ctx), createdUser.Email, createdUser.Username)
	}
	return createdUser, nil
}

func (u *AuthService) sendWelcome(ctx context.Context, email, username string) {
	u.mails.Add(1)
	go func() {
		defer u.mails.Done()
		ctx, cancel := context.WithTimeout(ctx, welcomeTimeout)
		defer cancel()
		if err := u.welcomer.SendWelcome(ctx, email, username); err != nil {
			u.log.ErrorErr("welcome mail failed", err, "username", username)
		}
	}()
}

// WaitMails blocks until every welcome mail started so far has finished.
func (u *AuthService) WaitMails() {
	u.mails.Wait()
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"choo-choo/cmd/api/auth"
	"choo-choo/internal/logger"
	"choo-choo/models"
	"choo-choo/repositories"
)

// UserStore 는 repositories.UserRepository 중 인증에 필요한 부분이다.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// SessionCreator 는 로그인 직후 빈 채팅 세션을 만든다.
type SessionCreator interface {
	Create(ctx context.Context, userID string) (*models.ChatSession, error)
}

type AuthService struct {
	users      UserStore
	sessions   SessionCreator
	jwtManager *auth.JWTManager
	bcryptCost int
}

func NewAuthService(users UserStore, sessions SessionCreator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// LoginResult 는 로그인 성공 결과다. SessionID 는 세션 생성에 실패하면 비어 있다.
type LoginResult struct {
	Token     string
	User      *models.User
	SessionID string
}

// Signup 은 새 계정을 만든다. 비밀번호는 bcrypt 해시로만 저장한다.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, *ServiceError) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, &ServiceError{
			StatusCode: http.StatusBadRequest,
			ErrorCode:  "missing_fields",
			Message:    "All fields are required.",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, internalError("signup_failed", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &ServiceError{
				StatusCode: http.StatusConflict,
				ErrorCode:  "user_exists",
				Message:    "User already exists or try with a different email ID.",
			}
		}
		return nil, internalError("signup_failed", err)
	}
	return user, nil
}

// normalizeEmail 은 가입과 로그인에서 같은 키로 사용자를 찾도록 한다.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Login 은 자격 증명을 확인하고 세션 토큰을 발급한 뒤 새 채팅 세션을 연다.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ServiceError{
				StatusCode: http.StatusNotFound,
				ErrorCode:  "user_not_found",
				Message:    "Oops, user does not exist.",
			}
		}
		return nil, internalError("login_failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &ServiceError{
			StatusCode: http.StatusUnauthorized,
			ErrorCode:  "wrong_password",
			Message:    "Wrong password.",
		}
	}

	userID := user.ID.Hex()
	token, err := s.jwtManager.Sign(userID, user.Name)
	if err != nil {
		return nil, internalError("login_failed", err)
	}

	result := &LoginResult{Token: token, User: user}
	session, err := s.sessions.Create(ctx, userID)
	if err != nil {
		logger.ErrorWithFields("failed to create chat session on login", logger.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
	} else {
		result.SessionID = session.ID.Hex()
	}
	return result, nil
}

// Authenticate 는 세션 토큰을 검증한다.
func (s *AuthService) Authenticate(token string) (*auth.Identity, error) {
	return s.jwtManager.Parse(token)
}

// SessionTTLSeconds 는 쿠키 Max-Age 로 쓸 토큰 유효 기간이다.
func (s *AuthService) SessionTTLSeconds() int {
	return int(s.jwtManager.TTL().Seconds())
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, ErrorCode: "user_not_found"}
		}
		return nil, internalError("failed_to_load_profile", err)
	}
	return user, nil
}

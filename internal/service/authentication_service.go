package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pet-adoption-server/config"
	"pet-adoption-server/internal/model"
	"pet-adoption-server/internal/ports"
	"pet-adoption-server/internal/repository"
	"pet-adoption-server/internal/security"
	"pet-adoption-server/internal/util"

	"github.com/google/uuid"
)

// Ошибки сервиса аутентификации. Handler маппит их на HTTP-статусы через
// errors.Is; наружу login- и refresh-отказы отдаются единым 401,
// различия остаются только в серверном логе.
var (
	// ErrConflict — телефон или email уже заняты при регистрации.
	ErrConflict = errors.New("телефон или email уже заняты")

	// ErrInvalidCredentials — пользователь не найден или пароль не совпал.
	// Причина намеренно одна на оба случая, чтобы не раскрывать, какой
	// логин существует.
	ErrInvalidCredentials = errors.New("неверный логин или пароль")

	// ErrUserInactive — учетная запись деактивирована.
	ErrUserInactive = errors.New("учетная запись деактивирована")

	// ErrInvalidToken — по digest предъявленного refresh-токена нет строки.
	ErrInvalidToken = errors.New("невалидный refresh-токен")

	// ErrTokenRevoked — предъявлен уже отозванный токен. Это сигнал replay:
	// токен был использован после ротации или logout, значит сохраненный
	// секрет могли украсть.
	ErrTokenRevoked = errors.New("refresh-токен отозван")

	// ErrTokenExpired — срок жизни refresh-токена истёк.
	ErrTokenExpired = errors.New("refresh-токен просрочен")

	// ErrUserUnavailable — владелец токена удален или деактивирован.
	ErrUserUnavailable = errors.New("пользователь недоступен")

	// ErrValidation : входные данные регистрации не прошли проверку
	ErrValidation = errors.New("некорректные данные")
)

// минимальная длина пароля при регистрации
const minPasswordLength = 8

type AuthenticationService struct {
	db        *config.Database
	userRepo  ports.UserRepository
	tokenRepo ports.RefreshTokenRepositoryInterface
	jwtConfig *config.JWTConfig
}

func NewAuthenticationService(
	db *config.Database,
	userRepo ports.UserRepository,
	tokenRepo ports.RefreshTokenRepositoryInterface,
	jwtConfig *config.JWTConfig,
) *AuthenticationService {
	return &AuthenticationService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtConfig: jwtConfig,
	}
}

// Register регистрирует нового пользователя.
// Пароль хэшируется bcrypt, роль по умолчанию USER.
// Дубликат телефона или email возвращается как ErrConflict.
func (s *AuthenticationService) Register(ctx context.Context, input model.RegisterUserInput) (*model.User, error) {
	if len(input.Name) == 0 {
		return nil, fmt.Errorf("[AuthService] имя обязательно: %w", ErrValidation)
	}
	if len(input.PhoneNumber) < 6 {
		return nil, fmt.Errorf("[AuthService] номер телефона должен быть не короче 6 символов: %w", ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("[AuthService] пароль должен содержать минимум %d символов: %w", minPasswordLength, ErrValidation)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось создать хэш пароля", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Age:          input.Age,
		Sex:          input.Sex,
		Location:     input.Location,
		IsActive:     true,
	}

	created, err := s.userRepo.CreateUser(ctx, s.db, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("[AuthService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

// Login проверяет пару телефон+пароль и возвращает минимальную идентичность.
// Токены здесь не выпускаются: хэндлер сам решает, что выдать.
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего.
func (s *AuthenticationService) Login(ctx context.Context, phoneNumber, password string) (*model.AuthIdentity, error) {
	user, err := s.userRepo.FindByPhone(ctx, s.db, phoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &model.AuthIdentity{UUID: user.UUID, Role: user.Role}, nil
}

// IssueRefreshToken выпускает новый refresh-токен для пользователя.
// Сырое значение возвращается единственный раз, в БД хранится только digest.
func (s *AuthenticationService) IssueRefreshToken(ctx context.Context, userUUID, userAgent, ipAddress string) (*model.IssuedRefreshToken, error) {
	rawToken, err := security.NewOpaqueToken(security.OpaqueTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации refresh-токена: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.refreshTokenTTL())

	refreshToken := &model.RefreshToken{
		UUID:        uuid.New().String(),
		UserUUID:    userUUID,
		TokenDigest: security.TokenDigest(rawToken),
		ExpiresAt:   expiresAt,
		UserAgent:   userAgent,
		IpAddress:   ipAddress,
	}

	if err := s.tokenRepo.Save(ctx, s.db, refreshToken); err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось сохранить refresh-токен: %w", err)
	}

	return &model.IssuedRefreshToken{RawToken: rawToken, ExpiresAt: expiresAt}, nil
}

// RotateRefreshToken обменивает живой refresh-токен на новый.
// Вставка преемника и отзыв предъявленного токена выполняются одной
// транзакцией: либо коммитятся оба шага, либо ни один — частичная ротация
// оставила бы в линии два живых токена или ни одного.
// Повторная конкурентная ротация того же токена упирается в условие
// revoked_at IS NULL и завершается ErrTokenRevoked, а не двойным выпуском.
func (s *AuthenticationService) RotateRefreshToken(ctx context.Context, rawToken, userAgent, ipAddress string) (*model.RotationResult, error) {
	digest := security.TokenDigest(rawToken)

	stored, err := s.tokenRepo.FindByDigest(ctx, s.db, digest)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("[AuthService] ошибка поиска refresh-токена: %w", err)
	}

	now := time.Now().UTC()

	if stored.Revoked() {
		// Replay: предъявлен токен, уже замененный ротацией или погашенный
		// logout. Логируем отдельно как возможную компрометацию.
		log.Printf("[AuthService] предъявлен отозванный refresh-токен %s пользователя %s — возможная компрометация", stored.UUID, stored.UserUUID)
		return nil, ErrTokenRevoked
	}

	if stored.Expired(now) {
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.FindByUUID(ctx, s.db, stored.UserUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserUnavailable
		}
		return nil, fmt.Errorf("[AuthService] ошибка поиска пользователя: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserUnavailable
	}

	newRawToken, err := security.NewOpaqueToken(security.OpaqueTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] ошибка генерации refresh-токена: %w", err)
	}

	newExpiresAt := now.Add(s.refreshTokenTTL())
	successor := &model.RefreshToken{
		UUID:        uuid.New().String(),
		UserUUID:    user.UUID,
		TokenDigest: security.TokenDigest(newRawToken),
		ExpiresAt:   newExpiresAt,
		UserAgent:   userAgent,
		IpAddress:   ipAddress,
	}

	exec, rollback, commit, err := s.tokenRepo.BeginTXx(ctx)
	if err != nil {
		return nil, util.LogError("[AuthService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.tokenRepo.Save(ctx, exec, successor); err != nil {
		return nil, fmt.Errorf("[AuthService] не удалось сохранить новый refresh-токен: %w", err)
	}

	if err := s.tokenRepo.Revise(ctx, exec, stored.UUID, now, &successor.UUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Пока шла ротация, токен успела отозвать конкурентная операция
			return nil, ErrTokenRevoked
		}
		return nil, fmt.Errorf("[AuthService] не удалось отозвать старый refresh-токен: %w", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[AuthService] не удалось закоммитить ротацию", err)
	}

	return &model.RotationResult{
		UserUUID:     user.UUID,
		Role:         user.Role,
		NewRawToken:  newRawToken,
		NewExpiresAt: newExpiresAt,
	}, nil
}

// RevokeRefreshToken гасит токен при logout.
// Идемпотентна: повторный отзыв и отзыв неизвестного токена — no-op.
func (s *AuthenticationService) RevokeRefreshToken(ctx context.Context, rawToken string) error {
	digest := security.TokenDigest(rawToken)

	if err := s.tokenRepo.RevokeByDigest(ctx, s.db, digest, time.Now().UTC()); err != nil {
		return fmt.Errorf("[AuthService] не удалось отозвать refresh-токен: %w", err)
	}

	return nil
}

func (s *AuthenticationService) refreshTokenTTL() time.Duration {
	days := s.jwtConfig.RefreshTokenDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskpad/internal/models"
)

const minPasswordLength = 4

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authServiceImpl struct {
	logger           zerolog.Logger
	pgPool           *pgxpool.Pool
	jwtIssuer        string
	jwtSigningKey    []byte
	registerTokenTTL time.Duration
	loginTokenTTL    time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	jwtIssuer string,
	jwtSigningKey []byte,
	registerTokenTTL time.Duration,
	loginTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:           logger,
		pgPool:           pgPool,
		jwtIssuer:        jwtIssuer,
		jwtSigningKey:    jwtSigningKey,
		registerTokenTTL: registerTokenTTL,
		loginTokenTTL:    loginTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (string, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return "", ErrMissingFields
	}
	if len(params.Password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	if !emailRegexp.MatchString(params.Email) {
		return "", ErrInvalidEmail
	}

	now := time.Now()
	user := models.User{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return "", err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return "", err
	}
	user.Password = passwordHash

	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   task_ids,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		[]string{},
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("email", user.Email).
					Msg("user with this email already exists")
				return "", ErrEmailTaken
			}
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return "", err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	token, _, err := s.generateToken(user.ID, s.registerTokenTTL)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return "", err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return token, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if params.Email == "" || params.Password == "" {
		return nil, ErrMissingFields
	}

	user := models.User{
		Email: params.Email,
	}

	const selectUserByEmailQuery = `
SELECT id,
       name,
       password
FROM users
WHERE email = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("selected user")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user.ID, s.loginTokenTTL)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		UserID:         user.ID,
		Name:           user.Name,
		Token:          token,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT id,
       name,
       email,
       task_ids,
       created_at,
       updated_at
FROM users
ORDER BY created_at
`
	rows, err := s.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.TaskIDs,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(users)).
		Msg("selected users")

	return users, nil
}

func (s *authServiceImpl) generateToken(userID string, ttl time.Duration) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.jwtIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

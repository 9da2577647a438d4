package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
	"github.com/jhoicas/sahil-erp/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Estados de login.
const (
	StatusIdle      = "idle"
	StatusLoggingIn = "logging-in"
	StatusSuccess   = "success"
	StatusError     = "loginError"
)

// AuthUseCase casos de uso de identidad: registro, login, logout y autenticación de tokens.
type AuthUseCase struct {
	identities repository.IdentityRepository
	sessions   repository.SessionStore
	workspaces *session.Manager
	jwtCfg     JWTConfig
	log        zerolog.Logger

	mu     sync.Mutex
	status map[string]dto.LoginStatusResponse
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identities repository.IdentityRepository, sessions repository.SessionStore, workspaces *session.Manager, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		identities: identities,
		sessions:   sessions,
		workspaces: workspaces,
		jwtCfg:     jwtCfg,
		log:        log.With().Str("component", "auth").Logger(),
		status:     make(map[string]dto.LoginStatusResponse),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea una identidad: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.IdentityResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.identities.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id := &entity.Identity{
		Principal:    uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.identities.Create(ctx, id); err != nil {
		return nil, err
	}
	uc.log.Info().Str("principal", id.Principal).Msg("identidad registrada")
	return toIdentityResponse(id), nil
}

// Login verifica email/password, emite el JWT, registra la sesión y abre su workspace.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	uc.setStatus(email, StatusLoggingIn, "")

	resp, err := uc.login(ctx, email, in.Password)
	if err != nil {
		uc.setStatus(email, StatusError, err.Error())
		return nil, err
	}
	uc.setStatus(email, StatusSuccess, "")
	return resp, nil
}

func (uc *AuthUseCase) login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	id, err := uc.identities.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	tok, err := jwt.Generate(uc.jwtCfg.Secret, id.Principal, id.Email, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	s := repository.Session{ID: tok.SessionID, Principal: id.Principal, Email: id.Email}
	if err := uc.sessions.Save(ctx, s, uc.jwtCfg.TTL); err != nil {
		return nil, err
	}
	if _, err := uc.workspaces.Open(ctx, s.ID, actor.Identity{Principal: s.Principal, Email: s.Email}); err != nil {
		_ = uc.sessions.Delete(ctx, s.ID)
		return nil, err
	}
	uc.log.Info().Str("principal", id.Principal).Str("session", s.ID).Msg("login")
	return &dto.LoginResponse{Token: tok.Value, ExpiresAt: tok.ExpiresAt, Identity: *toIdentityResponse(id)}, nil
}

// Authenticate valida el token y que su sesión siga viva; reabre el workspace si
// el proceso se reinició desde el login. Si la sesión expiró, su workspace se cierra.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*session.Workspace, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		if id, idErr := jwt.SessionID(uc.jwtCfg.Secret, token); idErr == nil {
			uc.expire(id)
		}
		return nil, domain.ErrUnauthorized
	}
	s, err := uc.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.expire(claims.ID)
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if s == nil || s.Principal != claims.Principal {
		uc.expire(claims.ID)
		return nil, domain.ErrUnauthorized
	}
	return uc.workspaces.Open(ctx, s.ID, actor.Identity{Principal: s.Principal, Email: s.Email})
}

// ReapExpired cierra los workspaces cuya sesión ya no existe en el almacén.
func (uc *AuthUseCase) ReapExpired(ctx context.Context) int {
	return uc.workspaces.Reap(ctx, uc.sessionLive)
}

// RunReaper ejecuta ReapExpired cada intervalo hasta que se cancela ctx.
func (uc *AuthUseCase) RunReaper(ctx context.Context, every time.Duration) {
	uc.workspaces.RunReaper(ctx, every, uc.sessionLive)
}

func (uc *AuthUseCase) sessionLive(ctx context.Context, sessionID string) (bool, error) {
	_, err := uc.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (uc *AuthUseCase) expire(sessionID string) {
	if _, ok := uc.workspaces.Get(sessionID); !ok {
		return
	}
	uc.workspaces.Close(sessionID)
	uc.log.Info().Str("session", sessionID).Msg("sesión expirada, workspace cerrado")
}

// Logout revoca la sesión, detiene el polling y vacía la caché del workspace.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	uc.workspaces.Close(sessionID)
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.log.Info().Str("session", sessionID).Msg("logout")
	return nil
}

// Status estado del último intento de login del email.
func (uc *AuthUseCase) Status(email string) dto.LoginStatusResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if st, ok := uc.status[normalizeEmail(email)]; ok {
		return st
	}
	return dto.LoginStatusResponse{Status: StatusIdle}
}

func (uc *AuthUseCase) setStatus(email, status, msg string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.status[email] = dto.LoginStatusResponse{Status: status, Error: msg}
}

func toIdentityResponse(id *entity.Identity) *dto.IdentityResponse {
	return &dto.IdentityResponse{Principal: id.Principal, Email: id.Email, CreatedAt: id.CreatedAt}
}

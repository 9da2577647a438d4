package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más la identidad de la sesión.
// El ID (jti) identifica la sesión para poder revocarla en logout.
type Claims struct {
	jwt.RegisteredClaims
	Principal string `json:"principal"`
	Email     string `json:"email"`
}

// Token resultado de Generate: el string firmado y los datos de sesión asociados.
type Token struct {
	Value     string
	SessionID string
	ExpiresAt time.Time
}

// Generate genera un token firmado para el principal con un jti nuevo.
func Generate(secret, principal, email, issuer string, ttl time.Duration) (*Token, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(ttl)
	sessionID := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Principal: principal,
		Email:     email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &Token{Value: signed, SessionID: sessionID, ExpiresAt: exp}, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Principal == "" || claims.ID == "" {
		return nil, fmt.Errorf("claims incompletos")
	}
	return claims, nil
}

// SessionID devuelve el jti de un token con firma válida aunque haya expirado.
// Sirve para liberar los recursos de una sesión que ya no puede autenticarse.
func SessionID(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", fmt.Errorf("claims incompletos")
	}
	return claims.ID, nil
}

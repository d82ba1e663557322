package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ProfileClaims identifica un perfil de navegador frente al portal.
// El portal firma y valida estos tokens; los tokens del backend solo se inspeccionan.
type ProfileClaims struct {
	jwt.RegisteredClaims
	ProfileID string `json:"profile_id"`
}

// GenerateProfile firma un token HS256 con el profileID indicado.
func GenerateProfile(secret, profileID, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if profileID == "" {
		return "", fmt.Errorf("jwt: profileID vacío")
	}
	now := time.Now()
	claims := ProfileClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ProfileID: profileID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseProfile valida el token y devuelve el profileID.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func ParseProfile(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &ProfileClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*ProfileClaims)
	if !ok || !token.Valid || claims.ProfileID == "" {
		return "", fmt.Errorf("claims inválidos")
	}
	return claims.ProfileID, nil
}

// ExpiresAt lee el claim exp de un token emitido por el backend sin verificar la firma
// (el portal no conoce el secreto). Devuelve ok=false si el token no es un JWT o no trae exp.
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

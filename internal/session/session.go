package session

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// 引擎只消费身份，不管理认证：令牌由外部会话层签发，
// 这里提供本地网关与压测所需的最小签发/解析能力。

// Mint 为用户签发 HMAC 令牌
func Mint(secret, userID string, ttl time.Duration) (string, error) {
    claims := jwt.RegisteredClaims{
        Subject:   userID,
        ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
        IssuedAt:  jwt.NewNumericDate(time.Now()),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// ParseUserID 校验令牌并取出用户 ID
func ParseUserID(secret, token string) (string, error) {
    parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !parsed.Valid {
        return "", ErrInvalidToken
    }
    claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
    if !ok || claims.Subject == "" {
        return "", ErrInvalidToken
    }
    return claims.Subject, nil
}

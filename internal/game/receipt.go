package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidReceipt = errors.New("invalid receipt")

// ReceiptClaims is the signed payload of a spin receipt
type ReceiptClaims struct {
	Session string `json:"session"`
	Spin    int    `json:"spin"`
	Pegs    [2]int `json:"pegs"`
	Prize   string `json:"prize,omitempty"`
	jwt.RegisteredClaims
}

// SignReceipt issues an HS256 receipt for a settled spin.
func SignReceipt(secret string, ttl time.Duration, result *SpinResult) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("receipt secret is empty")
	}

	now := time.Now()
	claims := ReceiptClaims{
		Session: result.Token,
		Spin:    result.Spin,
		Pegs:    [2]int{result.Pegs.A, result.Pegs.B},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "spinwheel",
			Subject:   result.Token,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if result.Prize != nil {
		claims.Prize = result.Prize.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyReceipt checks the signature and expiry of a receipt and returns its claims.
func VerifyReceipt(secret, receipt string) (*ReceiptClaims, error) {
	var claims ReceiptClaims
	parsed, err := jwt.ParseWithClaims(receipt, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidReceipt
	}
	return &claims, nil
}

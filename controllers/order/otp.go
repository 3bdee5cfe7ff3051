package orderControllers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mstrendzz/ecommerce-api/utils"
)

// The delivery confirmation handshake: the admin-triggered Shipped ->
// Delivered transition mails a one-time code to the customer and hands the
// admin an opaque token binding that code to the order. The code is never
// stored server-side; the signed token is the only record of it.

const deliveryTokenTTL = 10 * time.Minute

// GenerateOTP returns a 6-digit one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// NewDeliveryToken signs a time-bounded token carrying the order id and the
// code digest.
func NewDeliveryToken(orderID uint, code string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":      "delivery_otp",
		"order_id": orderID,
		"otp_hash": hashOTP(code),
		"exp":      time.Now().Add(deliveryTokenTTL).Unix(),
	})
	return t.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// CheckDeliveryToken verifies the token signature, expiry, order binding and
// code digest. Every mismatch is Unauthorized.
func CheckDeliveryToken(token string, orderID uint, code string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalid or expired delivery token", utils.ErrUnauthorized)
	}
	if typ, _ := claims["typ"].(string); typ != "delivery_otp" {
		return fmt.Errorf("%w: invalid delivery token", utils.ErrUnauthorized)
	}
	boundOrder, ok := claims["order_id"].(float64)
	if !ok || uint(boundOrder) != orderID {
		return fmt.Errorf("%w: token is not bound to this order", utils.ErrUnauthorized)
	}
	wantHash, _ := claims["otp_hash"].(string)
	gotHash := hashOTP(code)
	if subtle.ConstantTimeCompare([]byte(wantHash), []byte(gotHash)) != 1 {
		return fmt.Errorf("%w: incorrect confirmation code", utils.ErrUnauthorized)
	}
	return nil
}

package test

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// RandomIdempotencyKey returns a fresh client-style idempotency key.
func RandomIdempotencyKey() string {
	return uuid.NewString()
}

// RandomName builds a readable fixture name such as "customer-0042".
func RandomName(prefix string) string {
	return fmt.Sprintf("%s-%04d", prefix, rand.Intn(10000))
}

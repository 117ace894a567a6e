// internal/domain/user/entity_test.go
package user

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored SubscriptionStatus
		expiry sql.NullTime
		want   SubscriptionStatus
	}{
		{"active with future expiry", StatusActive, sql.NullTime{Time: now.AddDate(0, 1, 0), Valid: true}, StatusActive},
		{"active with past expiry reads expired", StatusActive, sql.NullTime{Time: now.AddDate(0, -1, 0), Valid: true}, StatusExpired},
		{"active with expiry equal to now reads expired", StatusActive, sql.NullTime{Time: now, Valid: true}, StatusExpired},
		{"active without expiry reads expired", StatusActive, sql.NullTime{}, StatusExpired},
		{"pending unaffected by expiry", StatusPending, sql.NullTime{Time: now.AddDate(0, -1, 0), Valid: true}, StatusPending},
		{"expired stays expired", StatusExpired, sql.NullTime{}, StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{SubscriptionStatus: tt.stored, ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, u.EffectiveStatus(now))
		})
	}
}

func TestHasUnlimitedPonds(t *testing.T) {
	assert.False(t, (&User{MaxPonds: 5}).HasUnlimitedPonds())
	assert.True(t, (&User{MaxPonds: UnlimitedPonds}).HasUnlimitedPonds())
}

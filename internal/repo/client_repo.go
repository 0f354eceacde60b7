// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the Client Directory: client identity
// records deduplicated by phone.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// AddOrGetClient returns the id of the client identified by phone, creating
// it when needed.
//
// The unique phone index is the phone → id lookup table:
//   - empty phone: a new client is always inserted;
//   - phone already known: the stored names are overwritten with firstName
//     and lastName and the existing id is returned;
//   - otherwise a new client is inserted.
//
// Callers validate input first; only storage errors are returned.
func AddOrGetClient(ctx context.Context, db *gorm.DB, firstName, lastName, phone string) (uint, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	q := db.WithContext(ctx)

	if p := domain.PhonePtr(phone); p != nil {
		existing, err := FindClientByPhone(ctx, db, *p)
		switch {
		case err == nil:
			if err := q.Model(existing).Updates(map[string]any{
				"first_name": firstName,
				"last_name":  lastName,
			}).Error; err != nil {
				return 0, err
			}
			return existing.ID, nil
		case !errors.Is(err, ErrNotFound):
			return 0, err
		}
	}

	c := &domain.Client{FirstName: firstName, LastName: lastName, Phone: domain.PhonePtr(phone)}
	if err := q.Create(c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

// GetClient fetches a client by id.
func GetClient(ctx context.Context, db *gorm.DB, id uint) (*domain.Client, error) {
	var c domain.Client
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindClientByPhone looks a client up by exact phone. Blank phones never match.
func FindClientByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Client, error) {
	p := domain.PhonePtr(phone)
	if p == nil {
		return nil, ErrNotFound
	}
	var out []domain.Client
	if err := db.WithContext(ctx).Where("phone = ?", *p).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

package store

import (
	"fmt"

	hashids "github.com/speps/go-hashids/v2"
)

// bookingRefAlphabet drops lookalike characters so references can be read
// out loud at the studio door.
const bookingRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// BookingRefGenerator produces the short codes printed on booking
// confirmations and emails.
type BookingRefGenerator struct {
	h *hashids.HashID
}

func NewBookingRefGenerator(salt string) (*BookingRefGenerator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8
	data.Alphabet = bookingRefAlphabet

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("booking ref generator: %w", err)
	}
	return &BookingRefGenerator{h: h}, nil
}

func (g *BookingRefGenerator) Generate(bookingID int64) (string, error) {
	code, err := g.h.EncodeInt64([]int64{bookingID})
	if err != nil {
		return "", err
	}
	return "FS-" + code, nil
}

package entities

import (
	"context"
	"log/slog"

	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// Donation amounts are whole currency units within an inclusive range.
const (
	MinDonationAmount = 1
	MaxDonationAmount = 10000
)

// Donation records a single gift against a post.
type Donation struct {
	Base
	User    string `dynamodbav:"user" json:"user"`
	Post    string `dynamodbav:"post" json:"post"`
	Amount  int    `dynamodbav:"amount" json:"amount"`
	Message string `dynamodbav:"message" json:"message,omitempty"`
}

// Donations manages the donation lifecycle.
type Donations struct {
	g      Gateway
	logger *slog.Logger
}

// NewDonations creates the donation service. A nil logger falls back to
// slog.Default.
func NewDonations(g Gateway, logger *slog.Logger) *Donations {
	if logger == nil {
		logger = slog.Default()
	}
	return &Donations{g: g, logger: logger}
}

// CreateDonation holds the fields for a new donation. Message is optional.
type CreateDonation struct {
	User    string
	Post    string
	Amount  int
	Message string
}

// Create validates, allocates an id, and writes the donation document.
// Attaching the donation to its post happens separately through
// Posts.AddDonation.
func (s *Donations) Create(ctx context.Context, in CreateDonation) (*Donation, error) {
	if err := validate.First(
		validate.Field("user", validate.NonEmpty(in.User)),
		validate.Field("post", validate.NonEmpty(in.Post)),
		validate.Field("amount", validate.IntBetween(in.Amount, MinDonationAmount, MaxDonationAmount)),
	); err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColDonations)
	if err != nil {
		return nil, err
	}

	fields := store.Fields{
		"user":   in.User,
		"post":   in.Post,
		"amount": in.Amount,
	}
	if in.Message != "" {
		fields["message"] = in.Message
	}

	doc, err := s.g.Insert(ctx, ColDonations, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("donation created", "id", id, "post", in.Post, "amount", in.Amount)
	return decode[Donation](doc)
}

// Get returns a donation by id.
func (s *Donations) Get(ctx context.Context, id string) (*Donation, error) {
	doc, err := s.g.Get(ctx, ColDonations, id)
	if err != nil {
		return nil, err
	}
	return decode[Donation](doc)
}

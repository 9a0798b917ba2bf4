package entities

import (
	"context"
	"log/slog"

	"github.com/openalms/openalms/auth"
	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// Charity is a registered charitable organization.
type Charity struct {
	Base
	Name         string   `dynamodbav:"name" json:"name"`
	Description  string   `dynamodbav:"description" json:"description"`
	Logo         string   `dynamodbav:"logo" json:"logo"`
	CharityToken string   `dynamodbav:"charityToken" json:"charityToken"`
	Users        []string `dynamodbav:"users" json:"users"`
	Campaigns    []string `dynamodbav:"campaigns" json:"campaigns"`
	Updates      []string `dynamodbav:"updates" json:"updates"`
}

// charityOwner: token.charity must equal the charity's own id.
var charityOwner = auth.Rule{Claim: auth.ClaimCharity}

// Charities manages the charity lifecycle.
type Charities struct {
	g      Gateway
	logger *slog.Logger
}

// NewCharities creates the charity service. A nil logger falls back to
// slog.Default.
func NewCharities(g Gateway, logger *slog.Logger) *Charities {
	if logger == nil {
		logger = slog.Default()
	}
	return &Charities{g: g, logger: logger}
}

// CreateCharity holds the fields for a new charity.
type CreateCharity struct {
	Name         string
	Description  string
	Logo         string
	CharityToken string
}

// Create validates, allocates an id, and writes the charity document with
// empty users, campaigns, and updates lists.
func (s *Charities) Create(ctx context.Context, in CreateCharity) (*Charity, error) {
	if err := validate.First(
		validate.Field("name", validate.NonEmpty(in.Name)),
		validate.Field("charityToken", validate.NonEmpty(in.CharityToken)),
		validate.Field("logo", validate.Optional(in.Logo, validate.ImageURL)),
	); err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColCharities)
	if err != nil {
		return nil, err
	}

	doc, err := s.g.Insert(ctx, ColCharities, id, store.Fields{
		"name":         in.Name,
		"description":  in.Description,
		"logo":         in.Logo,
		"charityToken": in.CharityToken,
		"users":        []string{},
		"campaigns":    []string{},
		"updates":      []string{},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("charity created", "id", id)
	return decode[Charity](doc)
}

// Get returns a charity by id.
func (s *Charities) Get(ctx context.Context, id string) (*Charity, error) {
	doc, err := s.g.Get(ctx, ColCharities, id)
	if err != nil {
		return nil, err
	}
	return decode[Charity](doc)
}

// EditCharity holds the optional fields of a charity edit. Nil fields are
// left untouched.
type EditCharity struct {
	Name        *string
	Description *string
	Logo        *string
}

// Edit applies a sparse update to a charity the token administers. Supplied
// fields are validated before ownership is checked.
func (s *Charities) Edit(ctx context.Context, tok auth.Token, id string, in EditCharity) (*Charity, error) {
	fields := store.Fields{}
	var checks []validate.Check
	if in.Name != nil {
		checks = append(checks, validate.Field("name", validate.NonEmpty(*in.Name)))
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Logo != nil {
		checks = append(checks, validate.Field("logo", validate.ImageURL(*in.Logo)))
		fields["logo"] = *in.Logo
	}
	if err := validate.First(checks...); err != nil {
		return nil, err
	}

	charity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := charityOwner.Check(tok, charity.ID); err != nil {
		return nil, err
	}

	doc, err := s.g.Update(ctx, ColCharities, id, fields)
	if err != nil {
		return nil, err
	}
	return decode[Charity](doc)
}

// AddUser appends a user reference to the charity. This runs as part of the
// charity creation sequence, before the creator holds a charity token, so it
// carries no ownership check.
func (s *Charities) AddUser(ctx context.Context, id, userID string) (*Charity, error) {
	doc, err := s.g.Append(ctx, ColCharities, id, "users", userID)
	if err != nil {
		return nil, err
	}
	return decode[Charity](doc)
}

// AddCampaign appends a campaign reference to a charity the token administers.
func (s *Charities) AddCampaign(ctx context.Context, tok auth.Token, id, campaignID string) (*Charity, error) {
	charity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := charityOwner.Check(tok, charity.ID); err != nil {
		return nil, err
	}

	doc, err := s.g.Append(ctx, ColCharities, id, "campaigns", campaignID)
	if err != nil {
		return nil, err
	}
	return decode[Charity](doc)
}

// AddUpdate appends an update reference to a charity the token administers.
func (s *Charities) AddUpdate(ctx context.Context, tok auth.Token, id, updateID string) (*Charity, error) {
	charity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := charityOwner.Check(tok, charity.ID); err != nil {
		return nil, err
	}

	doc, err := s.g.Append(ctx, ColCharities, id, "updates", updateID)
	if err != nil {
		return nil, err
	}
	return decode[Charity](doc)
}

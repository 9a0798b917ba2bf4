package entities

import (
	"context"
	"log/slog"

	"github.com/openalms/openalms/auth"
	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// Campaign is a fundraising drive run by a charity.
type Campaign struct {
	Base
	Charity     string `dynamodbav:"charity" json:"charity"`
	Name        string `dynamodbav:"name" json:"name"`
	Description string `dynamodbav:"description" json:"description"`
	Category    string `dynamodbav:"category" json:"category"`
}

// campaignOwner: token.charity must equal the campaign's charity reference.
var campaignOwner = auth.Rule{Claim: auth.ClaimCharity}

// Campaigns manages the campaign lifecycle.
type Campaigns struct {
	g      Gateway
	logger *slog.Logger
}

// NewCampaigns creates the campaign service. A nil logger falls back to
// slog.Default.
func NewCampaigns(g Gateway, logger *slog.Logger) *Campaigns {
	if logger == nil {
		logger = slog.Default()
	}
	return &Campaigns{g: g, logger: logger}
}

// CreateCampaign holds the fields for a new campaign.
type CreateCampaign struct {
	Charity     string
	Name        string
	Description string
	Category    string
}

// Create validates, allocates an id, and writes the campaign document.
func (s *Campaigns) Create(ctx context.Context, in CreateCampaign) (*Campaign, error) {
	if err := validate.First(
		validate.Field("charity", validate.NonEmpty(in.Charity)),
		validate.Field("name", validate.NonEmpty(in.Name)),
		validate.Field("category", validate.OneOf(in.Category, Categories)),
	); err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColCampaigns)
	if err != nil {
		return nil, err
	}

	doc, err := s.g.Insert(ctx, ColCampaigns, id, store.Fields{
		"charity":     in.Charity,
		"name":        in.Name,
		"description": in.Description,
		"category":    in.Category,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("campaign created", "id", id, "charity", in.Charity)
	return decode[Campaign](doc)
}

// Get returns a campaign by id.
func (s *Campaigns) Get(ctx context.Context, id string) (*Campaign, error) {
	doc, err := s.g.Get(ctx, ColCampaigns, id)
	if err != nil {
		return nil, err
	}
	return decode[Campaign](doc)
}

// EditCampaign holds the optional fields of a campaign edit. Nil fields are
// left untouched.
type EditCampaign struct {
	Name        *string
	Description *string
	Category    *string
}

// Edit applies a sparse update to a campaign owned by the token's charity.
// Supplied fields are validated before ownership is checked.
func (s *Campaigns) Edit(ctx context.Context, tok auth.Token, id string, in EditCampaign) (*Campaign, error) {
	fields := store.Fields{}
	var checks []validate.Check
	if in.Name != nil {
		checks = append(checks, validate.Field("name", validate.NonEmpty(*in.Name)))
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		checks = append(checks, validate.Field("category", validate.OneOf(*in.Category, Categories)))
		fields["category"] = *in.Category
	}
	if err := validate.First(checks...); err != nil {
		return nil, err
	}

	campaign, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := campaignOwner.Check(tok, campaign.Charity); err != nil {
		return nil, err
	}

	doc, err := s.g.Update(ctx, ColCampaigns, id, fields)
	if err != nil {
		return nil, err
	}
	return decode[Campaign](doc)
}

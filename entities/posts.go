package entities

import (
	"context"
	"log/slog"

	"github.com/openalms/openalms/auth"
	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// Post is a feed item a donor publishes against a campaign.
type Post struct {
	Base
	ObjectType     string   `dynamodbav:"objectType" json:"objectType"`
	User           string   `dynamodbav:"user" json:"user"`
	Campaign       string   `dynamodbav:"campaign" json:"campaign"`
	Category       string   `dynamodbav:"category" json:"category"`
	Charity        string   `dynamodbav:"charity" json:"charity"`
	Image          string   `dynamodbav:"image" json:"image"`
	ShareableImage string   `dynamodbav:"shareableImage" json:"shareableImage"`
	Caption        string   `dynamodbav:"caption" json:"caption,omitempty"`
	Donations      []string `dynamodbav:"donations" json:"donations"`
}

// postOwner: token.user must equal the post's user reference.
var postOwner = auth.Rule{Claim: auth.ClaimUser}

// Posts manages the post lifecycle.
type Posts struct {
	g      Gateway
	logger *slog.Logger
}

// NewPosts creates the post service. A nil logger falls back to slog.Default.
func NewPosts(g Gateway, logger *slog.Logger) *Posts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Posts{g: g, logger: logger}
}

// CreatePost holds the fields for a new post. Caption is optional.
type CreatePost struct {
	User           string
	Campaign       string
	Charity        string
	Image          string
	ShareableImage string
	Caption        string
}

// Create validates, snapshots the campaign's category, allocates an id, and
// writes the post document. The category is copied from the campaign at
// creation time and never re-synced; a missing campaign fails the create
// with store.ErrNotFound.
func (s *Posts) Create(ctx context.Context, in CreatePost) (*Post, error) {
	if err := validate.First(
		validate.Field("user", validate.NonEmpty(in.User)),
		validate.Field("campaign", validate.NonEmpty(in.Campaign)),
		validate.Field("charity", validate.NonEmpty(in.Charity)),
		validate.Field("image", validate.ImageURL(in.Image)),
		validate.Field("shareableImage", validate.ImageURL(in.ShareableImage)),
	); err != nil {
		return nil, err
	}

	campaignDoc, err := s.g.Get(ctx, ColCampaigns, in.Campaign)
	if err != nil {
		return nil, err
	}
	campaign, err := decode[Campaign](campaignDoc)
	if err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColPosts)
	if err != nil {
		return nil, err
	}

	fields := store.Fields{
		"objectType":     "post",
		"user":           in.User,
		"campaign":       in.Campaign,
		"category":       campaign.Category,
		"charity":        in.Charity,
		"image":          in.Image,
		"shareableImage": in.ShareableImage,
		"donations":      []string{},
	}
	if in.Caption != "" {
		fields["caption"] = in.Caption
	}

	doc, err := s.g.Insert(ctx, ColPosts, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created", "id", id, "campaign", in.Campaign)
	return decode[Post](doc)
}

// Get returns a post by id.
func (s *Posts) Get(ctx context.Context, id string) (*Post, error) {
	doc, err := s.g.Get(ctx, ColPosts, id)
	if err != nil {
		return nil, err
	}
	return decode[Post](doc)
}

// EditPost holds the optional fields of a post edit. Nil fields are left
// untouched; in particular, editing the caption never clears the images or
// the snapshotted category.
type EditPost struct {
	Caption        *string
	Image          *string
	ShareableImage *string
}

// Edit applies a sparse update to a post the token's user owns. Supplied
// fields are validated before ownership is checked.
func (s *Posts) Edit(ctx context.Context, tok auth.Token, id string, in EditPost) (*Post, error) {
	fields := store.Fields{}
	var checks []validate.Check
	if in.Caption != nil {
		fields["caption"] = *in.Caption
	}
	if in.Image != nil {
		checks = append(checks, validate.Field("image", validate.ImageURL(*in.Image)))
		fields["image"] = *in.Image
	}
	if in.ShareableImage != nil {
		checks = append(checks, validate.Field("shareableImage", validate.ImageURL(*in.ShareableImage)))
		fields["shareableImage"] = *in.ShareableImage
	}
	if err := validate.First(checks...); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := postOwner.Check(tok, post.User); err != nil {
		return nil, err
	}

	doc, err := s.g.Update(ctx, ColPosts, id, fields)
	if err != nil {
		return nil, err
	}
	return decode[Post](doc)
}

// AddDonation appends a donation reference to a post the token's user owns.
// The append is atomic store-side, so concurrent donations to the same post
// are all preserved.
func (s *Posts) AddDonation(ctx context.Context, tok auth.Token, id, donationID string) (*Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := postOwner.Check(tok, post.User); err != nil {
		return nil, err
	}

	doc, err := s.g.Append(ctx, ColPosts, id, "donations", donationID)
	if err != nil {
		return nil, err
	}
	return decode[Post](doc)
}

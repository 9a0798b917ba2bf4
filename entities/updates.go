package entities

import (
	"context"
	"log/slog"

	"github.com/openalms/openalms/store"
	"github.com/openalms/openalms/validate"
)

// Update is a progress note a charity publishes to its followers.
type Update struct {
	Base
	Charity string `dynamodbav:"charity" json:"charity"`
	Title   string `dynamodbav:"title" json:"title"`
	Content string `dynamodbav:"content" json:"content"`
	Image   string `dynamodbav:"image" json:"image,omitempty"`
}

// Updates manages the update lifecycle.
type Updates struct {
	g      Gateway
	logger *slog.Logger
}

// NewUpdates creates the update service. A nil logger falls back to
// slog.Default.
func NewUpdates(g Gateway, logger *slog.Logger) *Updates {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updates{g: g, logger: logger}
}

// CreateUpdate holds the fields for a new update. Image is optional.
type CreateUpdate struct {
	Charity string
	Title   string
	Content string
	Image   string
}

// Create validates, allocates an id, and writes the update document.
// Attaching the update to its charity happens separately through
// Charities.AddUpdate.
func (s *Updates) Create(ctx context.Context, in CreateUpdate) (*Update, error) {
	if err := validate.First(
		validate.Field("charity", validate.NonEmpty(in.Charity)),
		validate.Field("title", validate.NonEmpty(in.Title)),
		validate.Field("content", validate.NonEmpty(in.Content)),
		validate.Field("image", validate.Optional(in.Image, validate.ImageURL)),
	); err != nil {
		return nil, err
	}

	id, err := s.g.Allocate(ctx, ColUpdates)
	if err != nil {
		return nil, err
	}

	fields := store.Fields{
		"charity": in.Charity,
		"title":   in.Title,
		"content": in.Content,
	}
	if in.Image != "" {
		fields["image"] = in.Image
	}

	doc, err := s.g.Insert(ctx, ColUpdates, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("update created", "id", id, "charity", in.Charity)
	return decode[Update](doc)
}

// Get returns an update by id.
func (s *Updates) Get(ctx context.Context, id string) (*Update, error) {
	doc, err := s.g.Get(ctx, ColUpdates, id)
	if err != nil {
		return nil, err
	}
	return decode[Update](doc)
}

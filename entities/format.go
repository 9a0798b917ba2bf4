package entities

import (
	"context"
	"errors"
	"sync"

	"github.com/openalms/openalms/store"
)

// PostView is the denormalized composite view of a post, rebuilt on every
// read: the post's own fields plus a fixed whitelist of display fields
// copied from its charity, campaign, and user references.
type PostView struct {
	Post
	CharityName        string `json:"charityName,omitempty"`
	CharityLogo        string `json:"charityLogo,omitempty"`
	CharityDescription string `json:"charityDescription,omitempty"`
	CampaignName       string `json:"campaignName,omitempty"`
	CampaignDesc       string `json:"campaignDescription,omitempty"`
	UserName           string `json:"userName,omitempty"`
}

// Format joins a post with its referenced charity, campaign, and user. The
// three lookups hit disjoint collections and fill disjoint view fields, so
// they run concurrently. A reference that fails to resolve - erased or
// absent target - is tolerated silently: its group of fields is simply
// omitted and the call still succeeds. Store failures other than a missing
// document propagate.
func (s *Posts) Format(ctx context.Context, post *Post) (*PostView, error) {
	view := &PostView{Post: *post}

	var (
		wg      sync.WaitGroup
		charity *Charity
		campn   *Campaign
		user    *User
		errs    [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if doc, err := s.g.Get(ctx, ColCharities, post.Charity); err != nil {
			errs[0] = err
		} else {
			charity, errs[0] = decode[Charity](doc)
		}
	}()
	go func() {
		defer wg.Done()
		if doc, err := s.g.Get(ctx, ColCampaigns, post.Campaign); err != nil {
			errs[1] = err
		} else {
			campn, errs[1] = decode[Campaign](doc)
		}
	}()
	go func() {
		defer wg.Done()
		if doc, err := s.g.Get(ctx, ColUsers, post.User); err != nil {
			errs[2] = err
		} else {
			user, errs[2] = decode[User](doc)
		}
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	if charity != nil {
		view.CharityName = charity.Name
		view.CharityLogo = charity.Logo
		view.CharityDescription = charity.Description
	}
	if campn != nil {
		view.CampaignName = campn.Name
		view.CampaignDesc = campn.Description
	}
	if user != nil {
		view.UserName = user.Name
	}

	return view, nil
}

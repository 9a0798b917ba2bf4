package entities

import "github.com/openalms/openalms/store"

// EmailIndex is the GSI used for case-normalized email lookup on users.
const EmailIndex = "email-index"

// Collection declarations, one per entity type. Table names double as the
// DynamoDB table names the e2e suite provisions.
var (
	ColUsers = store.Collection{
		Type:    "user",
		Table:   "users",
		Unique:  []string{"email"},
		Indexes: []store.Index{{Name: EmailIndex, Attr: "email"}},
	}
	ColCharities = store.Collection{
		Type:  "charity",
		Table: "charities",
		Lists: []string{"users", "campaigns", "updates"},
	}
	ColCampaigns = store.Collection{
		Type:  "campaign",
		Table: "campaigns",
	}
	ColPosts = store.Collection{
		Type:  "post",
		Table: "posts",
		Lists: []string{"donations"},
	}
	ColDonations = store.Collection{
		Type:  "donation",
		Table: "donations",
	}
	ColUpdates = store.Collection{
		Type:  "update",
		Table: "updates",
	}
)

// Collections builds the registry of every platform collection.
func Collections() *store.Registry {
	r := store.NewRegistry()
	for _, c := range []store.Collection{ColUsers, ColCharities, ColCampaigns, ColPosts, ColDonations, ColUpdates} {
		r.Register(c)
	}
	return r
}

// Categories enumerates the campaign categories a post inherits.
var Categories = []string{
	"education",
	"health",
	"environment",
	"animals",
	"community",
	"emergency",
}

// ObjectTypes enumerates the feed object types.
var ObjectTypes = []string{"post", "update"}

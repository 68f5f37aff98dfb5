package ledger

import (
	"context"

	"changia/internal/core"
)

// Ports for outbound adapters. The engine owns these interfaces; SQLite and
// the in-memory store implement them.
type (
	// ContributionWriter accepts one record and returns a storage reference.
	ContributionWriter interface {
		Append(ctx context.Context, c core.Contribution) (ref string, err error)
	}

	// ContributionLister returns a group's record set ordered by
	// RecordedAt descending, the order the tally and reports display.
	ContributionLister interface {
		ListContributions(ctx context.Context, groupName string) ([]core.Contribution, error)
	}

	// GroupStore manages the read-mostly group context.
	GroupStore interface {
		CreateGroup(ctx context.Context, g core.Group) (int64, error)
		GetGroup(ctx context.Context, name string) (core.Group, error)
		ListGroups(ctx context.Context) ([]core.Group, error)
	}
)

package database

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Stats are the counters shown on the admin dashboard.
type Stats struct {
	Projects       int64 `json:"projects"`
	Skills         int64 `json:"skills"`
	TechStacks     int64 `json:"techStacks"`
	Tags           int64 `json:"tags"`
	Blogs          int64 `json:"blogs"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unreadMessages"`
}

// Stats runs the dashboard counts concurrently.
func (d Database) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	g, ctx := errgroup.WithContext(ctx)

	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&s.Projects, d.projectRepo.Count},
		{&s.Skills, d.skillRepo.Count},
		{&s.TechStacks, d.techStackRepo.Count},
		{&s.Tags, d.tagRepo.Count},
		{&s.Blogs, d.blogRepo.Count},
		{&s.Messages, d.messageRepo.Count},
		{&s.UnreadMessages, d.messageRepo.CountUnread},
	}
	for _, c := range counters {
		g.Go(func() error {
			n, err := c.count(ctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return s, nil
}

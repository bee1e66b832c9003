package content

import (
	"context"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/airtable/pkg/airtable"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Service reads the content and tags tables of one base.
type Service struct {
	content *airtable.Client[Content]
	tags    *airtable.Client[Tag]
}

// NewService builds clients for both tables. Options apply to both.
func NewService(cfg types.Config, opts ...airtable.Option) (*Service, error) {
	cc, err := airtable.NewClient(cfg, ContentSchema, NewContent, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating content client: %w", err)
	}
	tc, err := airtable.NewClient(cfg, TagSchema, NewTag, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating tags client: %w", err)
	}
	return &Service{content: cc, tags: tc}, nil
}

// Contents returns the client for the content table.
func (s *Service) Contents() *airtable.Client[Content] {
	return s.content
}

// Tags returns the client for the tags table.
func (s *Service) Tags() *airtable.Client[Tag] {
	return s.tags
}

// FetchContent returns every content row ordered by position. Rows with
// equal positions keep their server order.
func (s *Service) FetchContent(ctx context.Context) ([]Content, error) {
	items, err := airtable.Wait(s.content.FetchAll(ctx, ContentTable))
	if err != nil {
		return nil, fmt.Errorf("fetching content: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

// FetchTags returns every tag in server order.
func (s *Service) FetchTags(ctx context.Context) ([]Tag, error) {
	tags, err := airtable.Wait(s.tags.FetchAll(ctx, TagsTable))
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	return tags, nil
}

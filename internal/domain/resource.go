package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ResourceID string

// Resource is a shared study link.
type Resource struct {
	ID          ResourceID `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Link        string     `bson:"link" json:"link"`
	Description string     `bson:"description" json:"description"`
	Tags        []string   `bson:"tags" json:"tags"`
	Likes       int        `bson:"likes" json:"likes"`
	UserID      UserID     `bson:"userId" json:"userId"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

func NewResource(title, link, description string, tags []string, userID UserID) (*Resource, error) {
	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)
	if title == "" || link == "" {
		return nil, fmt.Errorf("%w: title and link are required", ErrValidation)
	}
	if tags == nil {
		tags = []string{}
	}
	return &Resource{
		ID:          ResourceID(uuid.NewString()),
		Title:       title,
		Link:        link,
		Description: description,
		Tags:        tags,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

package resource

import (
	"sort"
	"time"

	"github.com/toddkasper/outage-query/pkg/model"
)

type MentionResource struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type MentionListResource struct {
	Members []*MentionResource `json:"members"`
}

func NewMention(m *model.Mention) (out *MentionResource) {
	out = &MentionResource{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
	}

	return // out
}

func NewMentionList(m []model.Mention) (out *MentionListResource) {
	out = &MentionListResource{
		Members: make([]*MentionResource, 0),
	}

	for i := range m {
		out.Members = append(out.Members, NewMention(&m[i]))
	}

	// Default sort by creation time, oldest first
	sort.Slice(out.Members, func(i, j int) bool {
		return out.Members[i].CreatedAt.Before(out.Members[j].CreatedAt)
	})

	return // out
}

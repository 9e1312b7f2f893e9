package entity

import (
	"strings"
	"time"
)

type Note struct {
	Id        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch is a partial update. A nil field means "leave unchanged".
type NotePatch struct {
	Title   *string
	Content *string
}

// Normalize drops fields that are blank after trimming surrounding whitespace.
// Surviving fields keep the value as sent.
func (p NotePatch) Normalize() NotePatch {
	return NotePatch{
		Title:   keepNonBlank(p.Title),
		Content: keepNonBlank(p.Content),
	}
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// Apply merges the normalized patch into n and stamps UpdatedAt.
// UpdatedAt never moves before CreatedAt.
func (n *Note) Apply(p NotePatch, now time.Time) {
	p = p.Normalize()
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// Timestamp normalizes t to the precision PostgreSQL keeps for timestamptz.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func keepNonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

package models

import (
	"encoding/json"
	"time"
)

// Review is the decoded form of one rate_comments entry.
type Review struct {
	ID       int     `json:"id"`
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date,omitempty"`
	Verified bool    `json:"verified,omitempty"`
}

type reviewBlob struct {
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
	Verified bool    `json:"verified"`
}

func NewReviewBlob(userName string, rating float64, comment string, at time.Time) (string, error) {
	b, err := json.Marshal(reviewBlob{
		UserName: userName,
		Rating:   rating,
		Comment:  comment,
		Date:     at.UTC().Format(time.DateOnly),
		Verified: true,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseReview never fails: blobs that are not JSON objects come back as an
// anonymous zero-rated review carrying the raw text.
func ParseReview(idx int, raw string) Review {
	var b reviewBlob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return Review{ID: idx, UserName: "Anonymous", Rating: 0, Comment: raw}
	}
	return Review{
		ID:       idx,
		UserName: b.UserName,
		Rating:   b.Rating,
		Comment:  b.Comment,
		Date:     b.Date,
		Verified: b.Verified,
	}
}

func ParseReviews(blobs []string) []Review {
	out := make([]Review, 0, len(blobs))
	for i, raw := range blobs {
		out = append(out, ParseReview(i, raw))
	}
	return out
}

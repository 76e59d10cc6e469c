package review

import (
	"strings"

	"fiksit-api/internal/pkg/errs"
)

const (
	MinRating         = 1
	MaxRating         = 5
	MaxCommentLength  = 2000
)

var (
	ErrInvalidRating  = errs.New("rating must be between 1 and 5")
	ErrEmptyComment   = errs.New("comment cannot be empty")
	ErrCommentTooLong = errs.New("comment exceeds maximum length")
)

type Rating struct {
	value int
}

func NewRating(value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int {
	return r.value
}

type Comment struct {
	value string
}

func NewComment(value string) (Comment, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Comment{}, ErrEmptyComment
	}
	if len(value) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{value: trimmed}, nil
}

func (c Comment) String() string {
	return c.value
}

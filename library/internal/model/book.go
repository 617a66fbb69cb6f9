package model

import (
	"fmt"
	"strings"
)

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "Available"
	BookStatusUnavailable BookStatus = "Unavailable"
)

func (s BookStatus) Valid() bool {
	return s == BookStatusAvailable || s == BookStatusUnavailable
}

// ParseBookStatus matches case-insensitively, as query strings come from users.
func ParseBookStatus(s string) (BookStatus, error) {
	for _, st := range []BookStatus{BookStatusAvailable, BookStatusUnavailable} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown book status %q", s)
}

type Book struct {
	ID     int        `json:"id" db:"id"`
	Title  string     `json:"title" db:"title"`
	Author string     `json:"author" db:"author"`
	ISBN   string     `json:"isbn" db:"isbn"`
	Status BookStatus `json:"status" db:"status" validate:"omitempty,oneof=Available Unavailable"`
}

// BookFilter holds optional search criteria; zero values mean "any".
type BookFilter struct {
	Title  string
	Author string
	Status BookStatus
}

func (f BookFilter) IsEmpty() bool {
	return f.Title == "" && f.Author == "" && f.Status == ""
}

// Matches mirrors the SQL search predicate.
func (f BookFilter) Matches(b Book) bool {
	if f.Title != "" && !strings.Contains(b.Title, f.Title) {
		return false
	}
	if f.Author != "" && !strings.Contains(b.Author, f.Author) {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

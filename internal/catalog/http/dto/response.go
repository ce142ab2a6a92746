package dto

import (
	"github.com/vttbridge/relay/internal/catalog/domain"
)

// SourceBooksResponse wraps the source-book list.
type SourceBooksResponse struct {
	SourceBooks []domain.SourceBook `json:"sourceBooks"`
}

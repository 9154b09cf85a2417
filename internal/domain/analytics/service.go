package analytics

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stayhaven/hotel-api/internal/pkg/logger"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
)

// Service records site visits
type Service struct {
	repo  Repository
	dedup Deduper
}

// NewService creates analytics service. dedup may be nil.
func NewService(repo Repository, dedup Deduper) *Service {
	return &Service{repo: repo, dedup: dedup}
}

// Client is what the request itself says about the visitor
type Client struct {
	IP        string
	UserAgent string
}

// RecordVisit stores the visit unless the visitor was already seen in the
// current window. A dedupe failure does not drop the visit.
func (s *Service) RecordVisit(ctx context.Context, sess session.Session, client Client, req *RecordRequest) (*RecordResponse, error) {
	visitorID := req.VisitorID
	if visitorID == "" {
		visitorID = uuid.NewString()
	}

	if s.dedup != nil {
		first, err := s.dedup.FirstVisit(ctx, visitorID)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("visitor_id", visitorID).Msg("visit dedupe unavailable")
		} else if !first {
			return &RecordResponse{Recorded: false, VisitorID: visitorID}, nil
		}
	}

	v := &Visit{
		ID:               uuid.New(),
		VisitorID:        visitorID,
		IP:               client.IP,
		UserAgent:        client.UserAgent,
		Platform:         req.Platform,
		ScreenResolution: req.ScreenResolution,
		UserID:           nullString(sess.UserID),
		UserEmail:        nullString(sess.Email),
		Path:             req.Path,
		Referrer:         req.Referrer,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	return &RecordResponse{Recorded: true, VisitorID: visitorID}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

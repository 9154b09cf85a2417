package availability

import (
	"context"
	"time"

	"github.com/stayhaven/hotel-api/internal/domain/room"
	"github.com/stayhaven/hotel-api/internal/pkg/logger"
)

// RoomGetter loads room types
type RoomGetter interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// Publisher announces availability changes to live watchers
type Publisher interface {
	Publish(ctx context.Context, roomID string, dates []string) error
}

// Service reads availability snapshots and announces reservations
type Service struct {
	repo  Repository
	cache SnapshotCache
	rooms RoomGetter
	feed  Publisher
	loc   *time.Location
	now   func() time.Time
}

// NewService creates availability service. cache and feed may be nil.
func NewService(repo Repository, cache SnapshotCache, rooms RoomGetter, feed Publisher, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:  repo,
		cache: cache,
		rooms: rooms,
		feed:  feed,
		loc:   loc,
		now:   time.Now,
	}
}

// Today is the current calendar date at the hotel
func (s *Service) Today() time.Time {
	return DateOf(s.now(), s.loc)
}

func (s *Service) Room(ctx context.Context, roomID string) (*room.Room, error) {
	return s.rooms.GetByID(ctx, roomID)
}

// Snapshot returns booked counts for [from, to), served from cache when fresh
func (s *Service) Snapshot(ctx context.Context, roomID string, from, to time.Time) (Snapshot, error) {
	var version int64 = -1
	if s.cache != nil {
		snap, v, ok := s.cache.Get(ctx, roomID, from, to)
		if ok {
			return snap, nil
		}
		version = v
	}

	snap, err := s.repo.Snapshot(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, roomID, version, from, to, snap)
	}
	return snap, nil
}

// RoomCalendar returns per-night availability of a room for [from, to)
func (s *Service) RoomCalendar(ctx context.Context, roomID string, from, to time.Time) (*CalendarResponse, error) {
	if !from.Before(to) {
		return nil, ErrInvalidRange
	}
	if Nights(from, to) > MaxRangeNights {
		return nil, ErrRangeTooLong
	}

	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	snap, err := s.Snapshot(ctx, roomID, from, to)
	if err != nil {
		return nil, err
	}

	return &CalendarResponse{
		RoomID:     rm.ID,
		TotalStock: rm.Stock(),
		From:       FormatDate(from),
		To:         FormatDate(to),
		Days:       Calendar(rm.Stock(), snap, from, to),
	}, nil
}

// NotifyReserved drops cached snapshots of the room and tells live watchers
// which nights changed. Failures are logged; the reservation already stands.
func (s *Service) NotifyReserved(ctx context.Context, roomID string, checkIn, checkOut time.Time) {
	l := logger.FromContext(ctx)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roomID); err != nil {
			l.Error().Err(err).Str("room_id", roomID).Msg("failed to invalidate availability cache")
		}
	}

	if s.feed != nil {
		dates := DatesInRange(checkIn, checkOut)
		days := make([]string, 0, len(dates))
		for _, d := range dates {
			days = append(days, FormatDate(d))
		}
		if err := s.feed.Publish(ctx, roomID, days); err != nil {
			l.Error().Err(err).Str("room_id", roomID).Msg("failed to publish availability change")
		}
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rmaciel/event-hotel-booking/internal/repository"
)

// hotelListCacheKey stores the serialized hotel list. Only static
// hotel rows are cached; room occupancy is always read live.
const hotelListCacheKey = "hotels:all"

// HotelStore reads hotel rows.
type HotelStore interface {
	List(ctx context.Context) ([]repository.HotelView, error)
	GetByID(ctx context.Context, hotelID uint64) (*repository.HotelView, error)
}

// HotelService serves the hotel browsing endpoints. Access is gated
// by the same ticket eligibility rules as booking. The hotel list is
// cached in Redis for a short TTL; when no Redis client is configured
// the service reads straight from the database.
type HotelService struct {
	hotels      HotelStore
	rooms       RoomStore
	enrollments EnrollmentStore
	tickets     TicketStore
	cache       *redis.Client // nil disables caching
	cacheTTL    time.Duration
}

// NewHotelService constructs a HotelService. cache may be nil.
func NewHotelService(hotels HotelStore, rooms RoomStore, enrollments EnrollmentStore, tickets TicketStore, cache *redis.Client, cacheTTL time.Duration) *HotelService {
	if hotels == nil || rooms == nil || enrollments == nil || tickets == nil {
		panic("nil store passed to NewHotelService")
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &HotelService{
		hotels:      hotels,
		rooms:       rooms,
		enrollments: enrollments,
		tickets:     tickets,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// List returns all hotels for an eligible user. An empty hotel table
// yields ErrNotFound so the handler can answer 404, matching the
// booking endpoints' treatment of missing resources.
func (s *HotelService) List(ctx context.Context, userID uint64) ([]repository.HotelView, error) {
	if err := verifyHotelAccess(ctx, s.enrollments, s.tickets, userID); err != nil {
		return nil, err
	}
	hotels, err := s.cachedHotels(ctx)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, ErrNotFound
	}
	return hotels, nil
}

// GetWithRooms returns a hotel and its rooms with live occupant
// counts for an eligible user.
func (s *HotelService) GetWithRooms(ctx context.Context, userID, hotelID uint64) (*repository.HotelWithRooms, error) {
	if err := verifyHotelAccess(ctx, s.enrollments, s.tickets, userID); err != nil {
		return nil, err
	}
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rooms, err := s.rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return &repository.HotelWithRooms{HotelView: *hotel, Rooms: rooms}, nil
}

// cachedHotels reads the hotel list through the Redis cache. Cache
// failures fall back to the database silently; a stale or missing
// cache must never fail the request.
func (s *HotelService) cachedHotels(ctx context.Context) ([]repository.HotelView, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, hotelListCacheKey).Bytes(); err == nil {
			var hotels []repository.HotelView
			if err := json.Unmarshal(raw, &hotels); err == nil {
				return hotels, nil
			}
		}
	}
	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(hotels) > 0 {
		if raw, err := json.Marshal(hotels); err == nil {
			if err := s.cache.Set(ctx, hotelListCacheKey, raw, s.cacheTTL).Err(); err != nil {
				log.Printf("hotel cache: set failed: %v", err)
			}
		}
	}
	return hotels, nil
}

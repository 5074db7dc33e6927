package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another create/reschedule already holds the
// requested start time.
var ErrSlotHeld = errors.New("slot is already held")

// acquireHoldScript atomically claims a slot key. The Redis Go client
// switches to EVALSHA after the first call, so the script text is only
// sent once.
//
// Logic:
// 1. If the key exists -> someone else holds the slot, return 0
// 2. Otherwise SET it with a TTL and return 1
var acquireHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	return 1
`)

const slotHoldKeyPrefix = "slot:hold:"

// SlotHoldService serializes concurrent attempts to book the same start
// time. The hold only needs to cover the window between the DB overlap
// check and the insert; once the booking row exists the database is
// authoritative, so holds carry a short TTL and expire on their own.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire claims the slot for holderID. Returns ErrSlotHeld when a
// different holder got there first. Re-acquiring with the same holderID
// also fails; callers never need that.
func (s *SlotHoldService) Acquire(ctx context.Context, start time.Time, holderID uuid.UUID) error {
	key := slotHoldKey(start)
	result, err := acquireHoldScript.Run(ctx, s.redisClient, []string{key}, holderID.String(), s.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("acquire slot hold: %w", err)
	}
	if result == 0 {
		return ErrSlotHeld
	}
	return nil
}

// Release drops a hold early, e.g. when the DB insert failed and the slot
// should become bookable again immediately instead of waiting out the TTL.
func (s *SlotHoldService) Release(ctx context.Context, start time.Time) {
	key := slotHoldKey(start)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		// Non-fatal: the TTL cleans it up.
		s.log.Warnf("Failed to release slot hold %s: %+v", key, err)
	}
}

func slotHoldKey(start time.Time) string {
	return fmt.Sprintf("%s%d", slotHoldKeyPrefix, start.UTC().Unix())
}

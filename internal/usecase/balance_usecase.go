package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yamori/ammoledger/internal/domain"
)

// BalanceUseCase derives balances from the persisted event stream. All
// operations are read-only; balances are pure sums of signed quantities
// (corrections included) and may be negative.
type BalanceUseCase struct {
	events EventRepository
	types  TypeRepository
	cache  Cache
}

// NewBalanceUseCase creates a new BalanceUseCase. cache may be nil.
func NewBalanceUseCase(events EventRepository, types TypeRepository, cache Cache) *BalanceUseCase {
	return &BalanceUseCase{
		events: events,
		types:  types,
		cache:  cache,
	}
}

// CurrentBalance returns the current balance for one owner/type pair.
// Inactive types remain readable for historical events.
func (uc *BalanceUseCase) CurrentBalance(ctx context.Context, ownerID, typeID string) (int64, error) {
	if _, err := uc.types.GetByID(ctx, ownerID, typeID); err != nil {
		return 0, err
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, BalanceCacheKey(ownerID, typeID)); err == nil {
			if balance, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return balance, nil
			}
		}
	}

	balance, err := uc.events.SumQuantity(ctx, ownerID, typeID, nil)
	if err != nil {
		return 0, err
	}

	if uc.cache != nil {
		key := BalanceCacheKey(ownerID, typeID)
		if err := uc.cache.Set(ctx, key, strconv.FormatInt(balance, 10), balanceCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("balance cache write failed")
		}
	}

	return balance, nil
}

// BalanceAtDate returns the balance as of the end of the given calendar date.
func (uc *BalanceUseCase) BalanceAtDate(ctx context.Context, ownerID, typeID string, date time.Time) (int64, error) {
	if _, err := uc.types.GetByID(ctx, ownerID, typeID); err != nil {
		return 0, err
	}

	day := domain.TruncateToDate(date)

	return uc.events.SumQuantity(ctx, ownerID, typeID, &day)
}

// BalanceHistory returns one balance per calendar day in [start, end],
// carrying the balance forward from day to day. The sum of all events
// dated before start seeds the carried balance.
func (uc *BalanceUseCase) BalanceHistory(ctx context.Context, ownerID, typeID string, start, end time.Time) ([]domain.DailyBalance, error) {
	startDay := domain.TruncateToDate(start)
	endDay := domain.TruncateToDate(end)

	if startDay.After(endDay) {
		return nil, domain.ErrInvalidDateRange
	}

	if _, err := uc.types.GetByID(ctx, ownerID, typeID); err != nil {
		return nil, err
	}

	events, err := uc.events.ListThrough(ctx, ownerID, typeID, endDay)
	if err != nil {
		return nil, err
	}

	var running int64

	i := 0
	for ; i < len(events) && events[i].EventDate.Before(startDay); i++ {
		running += events[i].Quantity
	}

	var history []domain.DailyBalance
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		for ; i < len(events) && events[i].EventDate.Equal(day); i++ {
			running += events[i].Quantity
		}

		history = append(history, domain.DailyBalance{Date: day, Balance: running})
	}

	return history, nil
}

// AllCurrentBalances returns the balance and last event date for every
// active type owned by ownerID.
func (uc *BalanceUseCase) AllCurrentBalances(ctx context.Context, ownerID string) ([]*domain.TypeBalance, error) {
	return uc.events.CurrentBalances(ctx, ownerID)
}

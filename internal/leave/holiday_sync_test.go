package leave_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-hrm/internal/leave"
	"go-hrm/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeHolidayFeed struct {
	fetchFn func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error)
}

func (f *fakeHolidayFeed) FetchYear(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx, country, year)
	}
	return nil, nil
}

type fakeCountrySource struct {
	countries []string
	err       error
}

func (f *fakeCountrySource) DistinctCountries(ctx context.Context, tenantID string) ([]string, error) {
	return f.countries, f.err
}

// memoryHolidayStore keeps upserted holidays keyed by
// (country, date, name) so tests can assert idempotency.
type memoryHolidayStore struct {
	mu   sync.Mutex
	rows map[string]*leave.Holiday

	created int
	updated int
}

func newMemoryHolidayStore() *memoryHolidayStore {
	return &memoryHolidayStore{rows: make(map[string]*leave.Holiday)}
}

func (m *memoryHolidayStore) key(country string, date time.Time, name string) string {
	return country + "|" + date.Format("2006-01-02") + "|" + name
}

func (m *memoryHolidayStore) bind(repo *fakeHolidayRepository) {
	repo.findByNaturalKeyFn = func(ctx context.Context, tenantID, country string, date time.Time, name string) (*leave.Holiday, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if h, ok := m.rows[m.key(country, date, name)]; ok {
			copied := *h
			return &copied, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, h *leave.Holiday) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.rows[m.key(h.Country, h.Date, h.Name)] = h
		m.created++
		return nil
	}
	repo.updateFn = func(ctx context.Context, h *leave.Holiday) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.rows[m.key(h.Country, h.Date, h.Name)] = h
		m.updated++
		return nil
	}
}

func TestHolidaySync_SyncCountryYear(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	feedRows := []leave.FeedHoliday{
		{Date: "2026-01-01", Name: "New Year's Day", LocalName: "Nieuwjaarsdag"},
		{Date: "2026-04-27", Name: "King's Day", LocalName: "Koningsdag"},
	}

	t.Run("first sync creates all rows", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			assert.Equal(t, "NL", country)
			assert.Equal(t, 2026, year)
			return feedRows, nil
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})
		res, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Created)
		assert.Equal(t, 0, res.Updated)

		stored := store.rows[store.key("NL", mustDate(t, "2026-04-27"), "King's Day")]
		assert.NotNil(t, stored)
		assert.Equal(t, leave.HolidaySourceNagerDate, stored.Source)
		assert.Equal(t, "Koningsdag", stored.LocalName)
		assert.Equal(t, "NL:2026-04-27:King's Day", stored.ExternalID)
	})

	t.Run("repeat sync with unchanged feed writes nothing", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			return feedRows, nil
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})

		_, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)
		assert.NoError(t, err)

		res, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 0, res.Updated)
		assert.Equal(t, 2, store.created)
		assert.Equal(t, 0, store.updated)
	})

	t.Run("changed local name updates in place", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		rows := []leave.FeedHoliday{{Date: "2026-01-01", Name: "New Year's Day", LocalName: "Nieuwjaarsdag"}}
		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			return rows, nil
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})
		_, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)
		assert.NoError(t, err)

		rows[0].LocalName = "Nieuwjaar"
		res, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Updated)

		stored := store.rows[store.key("NL", mustDate(t, "2026-01-01"), "New Year's Day")]
		assert.Equal(t, "Nieuwjaar", stored.LocalName)
	})

	t.Run("malformed feed dates are skipped", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			return []leave.FeedHoliday{
				{Date: "not-a-date", Name: "Broken"},
				{Date: "2026-01-01", Name: "New Year's Day"},
			}, nil
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})
		res, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Created)
	})

	t.Run("feed failure surfaces as service unavailable and stores nothing", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			return nil, errors.New("connection refused")
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})
		_, err := svc.SyncCountryYear(ctx, tenantID, "NL", 2026)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeServiceUnavailable, appErr.Code)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
		assert.Equal(t, 0, store.created)
	})
}

func TestHolidaySync_SyncAll(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	t.Run("one failing country does not abort the others", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		store := newMemoryHolidayStore()
		store.bind(repo)

		feed := &fakeHolidayFeed{fetchFn: func(ctx context.Context, country string, year int) ([]leave.FeedHoliday, error) {
			if country == "DE" {
				return nil, errors.New("feed down")
			}
			return []leave.FeedHoliday{{Date: "2026-01-01", Name: "New Year's Day"}}, nil
		}}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{countries: []string{"DE", "NL"}})
		res, err := svc.SyncAll(ctx, tenantID)

		assert.Error(t, err)
		// NL synced for the current and the next year.
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, store.created)
	})

	t.Run("no department countries means nothing to do", func(t *testing.T) {
		repo := &fakeHolidayRepository{}
		feed := &fakeHolidayFeed{}

		svc := leave.NewSyncService(feed, repo, &fakeCountrySource{})
		res, err := svc.SyncAll(ctx, tenantID)
		assert.NoError(t, err)
		assert.Equal(t, 0, res.Created)
	})
}

package leave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-hrm/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	nagerDateBaseURL = "https://date.nager.at/api/v3"
	feedTimeout      = 30 * time.Second
)

// FeedHoliday is one row from the external public-holiday feed.
type FeedHoliday struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	LocalName string `json:"localName"`
}

// HolidayFeed fetches public holidays for a country/year. The real
// implementation talks to Nager.Date; tests substitute a fake.
type HolidayFeed interface {
	FetchYear(ctx context.Context, country string, year int) ([]FeedHoliday, error)
}

type nagerDateFeed struct {
	client  *http.Client
	baseURL string
}

func NewNagerDateFeed() HolidayFeed {
	return &nagerDateFeed{
		client:  &http.Client{Timeout: feedTimeout},
		baseURL: nagerDateBaseURL,
	}
}

func (f *nagerDateFeed) FetchYear(ctx context.Context, country string, year int) ([]FeedHoliday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", f.baseURL, year, country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday feed returned status %d for %s/%d", resp.StatusCode, country, year)
	}

	var holidays []FeedHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, err
	}
	return holidays, nil
}

// CountrySource lists the distinct department countries of a tenant.
// Satisfied by department.Repository.
type CountrySource interface {
	DistinctCountries(ctx context.Context, tenantID string) ([]string, error)
}

type SyncResult struct {
	Created int
	Updated int
}

// SyncService refills the holiday cache from the external feed. It is
// background maintenance: the leave workflow only ever reads rows that
// are already stored.
//
//go:generate mockgen -source=holiday_sync.go -destination=mock/holiday_sync_mock.go -package=mock
type SyncService interface {
	SyncCountryYear(ctx context.Context, tenantID, country string, year int) (SyncResult, error)
	SyncAll(ctx context.Context, tenantID string) (SyncResult, error)
}

type syncService struct {
	feed      HolidayFeed
	holidays  HolidayRepository
	countries CountrySource
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewSyncService(
	feed HolidayFeed,
	holidays HolidayRepository,
	countries CountrySource,
	logger ...*zap.Logger,
) SyncService {
	l := zap.L().Named("leave.holiday.sync")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.holiday.sync")
	}
	return &syncService{
		feed:      feed,
		holidays:  holidays,
		countries: countries,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// SyncCountryYear is an idempotent upsert keyed by
// (tenant, country, date, name). Concurrent identical syncs collapse
// into a single feed call via singleflight.
func (s *syncService) SyncCountryYear(ctx context.Context, tenantID, country string, year int) (SyncResult, error) {
	key := fmt.Sprintf("%s:%s:%d", tenantID, country, year)

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.doSync(ctx, tenantID, country, year)
	})
	if err != nil {
		return SyncResult{}, err
	}
	return v.(SyncResult), nil
}

func (s *syncService) doSync(ctx context.Context, tenantID, country string, year int) (SyncResult, error) {
	feed, err := s.feed.FetchYear(ctx, country, year)
	if err != nil {
		s.logger.Warn("holiday feed fetch failed",
			zap.String("tenant_id", tenantID),
			zap.String("country", country),
			zap.Int("year", year),
			zap.Error(err),
		)
		return SyncResult{}, apperror.Wrap(
			err,
			apperror.CodeServiceUnavailable,
			"Holiday feed is unavailable, try again later",
			http.StatusServiceUnavailable,
		)
	}

	var result SyncResult
	for _, fh := range feed {
		date, err := time.Parse("2006-01-02", fh.Date)
		if err != nil {
			s.logger.Warn("skipping holiday with malformed date",
				zap.String("date", fh.Date),
				zap.String("name", fh.Name),
			)
			continue
		}

		existing, err := s.holidays.FindByNaturalKey(ctx, tenantID, country, date, fh.Name)
		switch {
		case err == nil:
			if existing.LocalName == fh.LocalName && existing.Source == HolidaySourceNagerDate {
				continue
			}
			existing.LocalName = fh.LocalName
			existing.Source = HolidaySourceNagerDate
			existing.ExternalID = externalID(country, fh.Date, fh.Name)
			if err := s.holidays.Update(ctx, existing); err != nil {
				return result, err
			}
			result.Updated++
		case err == gorm.ErrRecordNotFound:
			h := &Holiday{
				ID:         uuid.New(),
				TenantID:   uuid.MustParse(tenantID),
				Country:    country,
				Date:       date,
				Name:       fh.Name,
				LocalName:  fh.LocalName,
				Source:     HolidaySourceNagerDate,
				ExternalID: externalID(country, fh.Date, fh.Name),
			}
			if err := s.holidays.Create(ctx, h); err != nil {
				return result, err
			}
			result.Created++
		default:
			return result, err
		}
	}

	s.logger.Info("holiday sync finished",
		zap.String("tenant_id", tenantID),
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}

// SyncAll refreshes the current and next year for every distinct
// department country of the tenant. Feed failures for one country do
// not abort the others; the last failure is reported.
func (s *syncService) SyncAll(ctx context.Context, tenantID string) (SyncResult, error) {
	countries, err := s.countries.DistinctCountries(ctx, tenantID)
	if err != nil {
		return SyncResult{}, err
	}

	currentYear := time.Now().UTC().Year()
	var total SyncResult
	var lastErr error

	for _, country := range countries {
		for _, year := range []int{currentYear, currentYear + 1} {
			res, err := s.SyncCountryYear(ctx, tenantID, country, year)
			if err != nil {
				lastErr = err
				continue
			}
			total.Created += res.Created
			total.Updated += res.Updated
		}
	}

	return total, lastErr
}

func externalID(country, date, name string) string {
	return country + ":" + date + ":" + name
}

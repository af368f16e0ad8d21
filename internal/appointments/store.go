package appointments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
	"github.com/imrishuroy/go-orders-appointments-api/internal/metrics"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// ErrInvalidFilter is returned when query parameters do not map to a single access pattern.
var ErrInvalidFilter = errors.New("invalid appointment filter")

// Store encapsulates read operations on the appointments table.
type Store struct {
	table    *ddb.Table
	validate *validatorv10.Validate
	cache    cache.JSONCache
	recorder metrics.Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithCache enables the read-through cache for Get.
func WithCache(c cache.JSONCache) Option {
	return func(s *Store) { s.cache = c }
}

// WithRecorder reports every store operation to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// NewStore creates a new appointments Store.
func NewStore(client aws.DynamoDBAPI, tableName string, opts ...Option) *Store {
	s := &Store{
		table:    ddb.NewTable(client, tableName),
		validate: validation.New(),
		cache:    cache.Nop{},
		recorder: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List dispatches a filter to the matching access pattern:
//
//	doctor (+date)  DoctorDateIndex
//	patientEmail    PatientEmailIndex
//	date            prefix scan
//	nothing         full scan
func (s *Store) List(ctx context.Context, f Filter) ([]Appointment, error) {
	switch {
	case f.PatientEmail != "" && (f.Doctor != "" || f.Date != ""):
		return nil, fmt.Errorf("%w: patientEmail cannot be combined with doctor or date", ErrInvalidFilter)
	case f.Doctor != "":
		return s.ListByDoctorAndDate(ctx, f.Doctor, f.Date)
	case f.PatientEmail != "":
		return s.ListByPatientEmail(ctx, f.PatientEmail)
	case f.Date != "":
		return s.ListByDate(ctx, f.Date)
	default:
		return s.ListAll(ctx)
	}
}

// ListAll returns every appointment, earliest first.
func (s *Store) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.list(ctx, "appointments.list_all", func() ([]ddb.Record, error) {
		return s.table.ScanWithPrefix(ctx, ddb.KeyPrefix(ddb.EntityAppointment))
	})
}

// ListByDate returns the appointments on one calendar day. date is either YYYY-MM-DD or a
// full timestamp; only its day is used. Matching is a prefix test on the stored string.
func (s *Store) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	day, ok := validation.CalendarDay(date)
	if !ok {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidFilter, date)
	}
	return s.list(ctx, "appointments.list_by_date", func() ([]ddb.Record, error) {
		return s.table.ScanWithPrefix(ctx, ddb.KeyPrefix(ddb.EntityAppointment), ddb.Prefix{Attr: "date", Value: day})
	})
}

// ListByPatientEmail returns one patient's appointments.
func (s *Store) ListByPatientEmail(ctx context.Context, email string) ([]Appointment, error) {
	return s.list(ctx, "appointments.list_by_patient_email", func() ([]ddb.Record, error) {
		return s.table.QueryIndex(ctx, PatientEmailIndex, ddb.KeyCondition{Attr: "patientEmail", Value: email})
	})
}

// ListByDoctorAndDate returns a doctor's appointments, optionally narrowed to one calendar day.
func (s *Store) ListByDoctorAndDate(ctx context.Context, doctor, date string) ([]Appointment, error) {
	cond := ddb.KeyCondition{Attr: "doctorName", Value: doctor}
	if date != "" {
		day, ok := validation.CalendarDay(date)
		if !ok {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidFilter, date)
		}
		cond.SortPrefix = &ddb.Prefix{Attr: "date", Value: day}
	}
	return s.list(ctx, "appointments.list_by_doctor", func() ([]ddb.Record, error) {
		return s.table.QueryIndex(ctx, DoctorDateIndex, cond)
	})
}

// CacheKey is the cache key of the appointment with the given id.
func CacheKey(id string) string { return "appointment:" + id }

// Get fetches an appointment by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Appointment, error) {
	cacheKey := CacheKey(id)
	var cached Appointment
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("[appointments] cache read %s: %v", cacheKey, err)
	} else if hit {
		return &cached, nil
	}

	var out *Appointment
	err := metrics.Observe(ctx, s.recorder, "appointments.get", func() error {
		rec, err := s.table.GetByKey(ctx, ddb.EntityKey(ddb.EntityAppointment, id))
		if err != nil || rec == nil {
			return err
		}
		r, err := ddb.Decode[Record](rec, s.validate)
		if err != nil {
			return err
		}
		a := FromRecord(r)
		out = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get appointment %s: %w", id, err)
	}
	if out != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, out); err != nil {
			log.Printf("[appointments] cache write %s: %v", cacheKey, err)
		}
	}
	return out, nil
}

func (s *Store) list(ctx context.Context, op string, read func() ([]ddb.Record, error)) ([]Appointment, error) {
	var out []Appointment
	err := metrics.Observe(ctx, s.recorder, op, func() error {
		recs, err := read()
		if err != nil {
			return err
		}
		decoded, err := ddb.DecodeAll[Record](recs, s.validate)
		if err != nil {
			return err
		}
		out = make([]Appointment, 0, len(decoded))
		for _, r := range decoded {
			out = append(out, FromRecord(r))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sortEarliestFirst(out)
	return out, nil
}

// sortEarliestFirst orders by instant, not by string, so mixed offsets compare correctly.
func sortEarliestFirst(appts []Appointment) {
	at := make([]time.Time, len(appts))
	idx := make([]int, len(appts))
	for i, a := range appts {
		at[i], _ = validation.ParseTimestamp(a.Date)
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int { return at[i].Compare(at[j]) })
	sorted := make([]Appointment, len(appts))
	for k, i := range idx {
		sorted[k] = appts[i]
	}
	copy(appts, sorted)
}

package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{})
}

// Save upserts the record. An empty id gets a fresh uuid; updates carry an
// optimistic version filter so a concurrently modified record is rejected.
func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

func (r *ReservationRepository) FindByClient(ctx context.Context, clientID string) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{"client_id": clientID})
}

func (r *ReservationRepository) FindByProperty(ctx context.Context, propertyID string) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{"property_id": propertyID})
}

func (r *ReservationRepository) FindByStatus(ctx context.Context, status reservation.Status) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

func (r *ReservationRepository) FindByCreatedBetween(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{"created_at": bson.M{
		"$gte": start.UnixMilli(),
		"$lte": end.UnixMilli(),
	}})
}

func (r *ReservationRepository) FindByCode(ctx context.Context, code string) (*reservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// FindOverlapping matches active reservations whose ranges conflict with
// the given one, boundary dates included.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, propertyID string, rng daterange.DateRange) ([]*reservation.Reservation, error) {
	return r.find(ctx, bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": activeStatuses()},
		"check_in":    bson.M{"$lte": rng.CheckOut.UnixMilli()},
		"check_out":   bson.M{"$gte": rng.CheckIn.UnixMilli()},
	})
}

// FindByPropertyAndMonth matches active reservations whose check-in or
// check-out date lands inside the month.
func (r *ReservationRepository) FindByPropertyAndMonth(ctx context.Context, propertyID string, month, year int) ([]*reservation.Reservation, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	window := bson.M{"$gte": monthStart.UnixMilli(), "$lt": nextMonth.UnixMilli()}
	return r.find(ctx, bson.M{
		"property_id": propertyID,
		"status":      bson.M{"$in": activeStatuses()},
		"$or": bson.A{
			bson.M{"check_in": window},
			bson.M{"check_out": window},
		},
	})
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*reservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	items := make([]*reservation.Reservation, 0)
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

func activeStatuses() bson.A {
	statuses := reservation.ActiveStatuses()
	out := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

type reservationDocument struct {
	ID         string `bson:"_id"`
	PropertyID string `bson:"property_id"`
	ClientID   string `bson:"client_id"`
	CheckIn    int64  `bson:"check_in"`
	CheckOut   int64  `bson:"check_out"`
	Guests     int    `bson:"guests"`
	PriceCents int64  `bson:"price_cents"`
	Status     string `bson:"status"`
	Notes      string `bson:"notes"`
	Code       string `bson:"code"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
	CheckInAt  *int64 `bson:"check_in_at,omitempty"`
	CheckOutAt *int64 `bson:"check_out_at,omitempty"`
	Version    int64  `bson:"version"`
}

func newReservationDocument(res *reservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:         res.ID,
		PropertyID: res.PropertyID,
		ClientID:   res.ClientID,
		CheckIn:    res.Range.CheckIn.UnixMilli(),
		CheckOut:   res.Range.CheckOut.UnixMilli(),
		Guests:     res.Guests,
		PriceCents: res.PriceCents,
		Status:     string(res.Status),
		Notes:      res.Notes,
		Code:       res.Code,
		CreatedAt:  res.CreatedAt.UnixMilli(),
		UpdatedAt:  res.UpdatedAt.UnixMilli(),
		CheckInAt:  timestampPtr(res.CheckInAt),
		CheckOutAt: timestampPtr(res.CheckOutAt),
		Version:    res.Version,
	}
}

func (d reservationDocument) toAggregate() *reservation.Reservation {
	return &reservation.Reservation{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		ClientID:   d.ClientID,
		Range: daterange.DateRange{
			CheckIn:  timestampToTime(d.CheckIn),
			CheckOut: timestampToTime(d.CheckOut),
		},
		Guests:     d.Guests,
		PriceCents: d.PriceCents,
		Status:     reservation.Status(d.Status),
		Notes:      d.Notes,
		Code:       d.Code,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		CheckInAt:  timeFromPtr(d.CheckInAt),
		CheckOutAt: timeFromPtr(d.CheckOutAt),
		Version:    d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timestampPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func timeFromPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

var _ reservation.Repository = (*ReservationRepository)(nil)

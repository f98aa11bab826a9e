package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func (mdb *MongodbRepo) EnsureSchema(ctx context.Context) error {
	col := mdb.GetCollection(BookingsCollection)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("error creating bookings index: %w", err)
	}
	return nil
}

// nextBookingID hands out ids from a per-collection sequence document.
func (mdb *MongodbRepo) nextBookingID(ctx context.Context) (int64, error) {
	col := mdb.GetCollection(CountersCollection)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": BookingsCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("error incrementing booking sequence: %w", err)
	}
	return c.Seq, nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, b *Booking) error {
	if err := Validate.Struct(b); err != nil {
		return fmt.Errorf("invalid booking: %w", err)
	}

	id, err := mdb.nextBookingID(ctx)
	if err != nil {
		return err
	}
	b.ID = id
	b.CreatedAt = time.Now().UTC()

	if _, err := mdb.GetCollection(BookingsCollection).InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListBookingsByUser(ctx context.Context, userEmail string) ([]*Booking, error) {
	col := mdb.GetCollection(BookingsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := col.Find(ctx, bson.M{"user_email": userEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

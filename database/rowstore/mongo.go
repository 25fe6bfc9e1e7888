package rowstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotboard/database"
	"slotboard/models"
)

// MongoStore emulates the flat positional tables over a MongoDB database:
// one collection per table, one document per row, ordered by an explicit
// "pos" field. Append and delete each take two round trips (count/shift
// plus the write) and are not transactional; a concurrent writer between
// the two can skew positions, which callers accept.
type MongoStore struct {
	db *mongo.Database
}

type rowDoc struct {
	Pos   int      `bson:"pos"`
	Cells []string `bson:"cells"`
}

func NewMongoStore() *MongoStore {
	return &MongoStore{db: database.MongoClient.Database("slotboard")}
}

func (s *MongoStore) ReadTable(ctx context.Context, table Table) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "pos", Value: 1}})
	cursor, err := s.db.Collection(string(table)).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &models.PersistenceError{Op: "read", Table: string(table), Err: err}
	}
	defer cursor.Close(ctx)

	var docs []rowDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &models.PersistenceError{Op: "read", Table: string(table), Err: err}
	}
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = d.Cells
	}
	return rows, nil
}

func (s *MongoStore) AppendRow(ctx context.Context, table Table, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll := s.db.Collection(string(table))
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return &models.PersistenceError{Op: "append", Table: string(table), Err: err}
	}
	if _, err := coll.InsertOne(ctx, rowDoc{Pos: int(n), Cells: row}); err != nil {
		return &models.PersistenceError{Op: "append", Table: string(table), Err: err}
	}
	return nil
}

func (s *MongoStore) UpdateRow(ctx context.Context, table Table, index int, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.db.Collection(string(table)).UpdateOne(ctx,
		bson.M{"pos": index},
		bson.M{"$set": bson.M{"cells": row}},
	)
	if err != nil {
		return &models.PersistenceError{Op: "update", Table: string(table), Err: err}
	}
	if res.MatchedCount == 0 {
		return &models.NotFoundError{Kind: "row", Key: string(table)}
	}
	return nil
}

func (s *MongoStore) DeleteRow(ctx context.Context, table Table, index int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll := s.db.Collection(string(table))
	res, err := coll.DeleteOne(ctx, bson.M{"pos": index})
	if err != nil {
		return &models.PersistenceError{Op: "delete", Table: string(table), Err: err}
	}
	if res.DeletedCount == 0 {
		return &models.NotFoundError{Kind: "row", Key: string(table)}
	}
	// Shift later rows down so positions stay dense.
	_, err = coll.UpdateMany(ctx,
		bson.M{"pos": bson.M{"$gt": index}},
		bson.M{"$inc": bson.M{"pos": -1}},
	)
	if err != nil {
		return &models.PersistenceError{Op: "delete", Table: string(table), Err: err}
	}
	return nil
}

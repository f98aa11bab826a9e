package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

type PostgresRepo struct {
	db *sqlx.DB
}

func PostgresNewRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}

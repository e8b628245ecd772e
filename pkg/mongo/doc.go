// Package mongo provides MongoDB connection helpers and unique-index
// collaborators built on [go.mongodb.org/mongo-driver/v2].
//
// [Connect] retries the initial ping so application startup survives
// MongoDB Atlas cold starts and brief network interruptions.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.Database(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	coll := db.Collection("handles")
//	_ = mongo.EnsureUniqueIndex(ctx, coll, "handle")
//
//	handle, err := unique.CreateSlug(ctx, "John Doe",
//		mongo.Claim(coll, "handle", bson.M{"owner": userID}),
//		mongo.IsDuplicateKeyError,
//	)
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: uniq)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Error Handling
//
//	ErrFailedToConnectToMongo - all retry attempts are exhausted
//	ErrHealthcheckFailed      - health check ping fails
//	ErrInvalidField           - empty field name
package mongo

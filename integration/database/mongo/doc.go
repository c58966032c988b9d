// Package mongo connects to MongoDB with retries and exposes a health check.
//
// New pings the server before returning and retries only ping failures, which
// covers Atlas cold starts and short network outages. A malformed connection
// string fails at once.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "ontologies")
//	if err != nil {
//		return err
//	}
//	concepts := db.Collection("anatomic_locations")
//
// Environment:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// Healthcheck returns a func(context.Context) error that pings the primary and
// wraps failures in ErrHealthcheckFailed. New reports ErrEmptyConnectionURL for
// a blank URL and ErrFailedToConnectToMongo once retries are exhausted.
package mongo

package utils

import "os"

var (
	// GRAPH_STORE_ENDPOINT selects the backing store connection, e.g.
	// memory://local or postgresql://root@localhost:26257/icegraph
	GRAPH_STORE_ENDPOINT = GetEnvOrDefault("GRAPH_STORE_ENDPOINT", "memory://local")
	GRAPH_OBJECT_ID      = os.Getenv("GRAPH_OBJECT_ID")
	STORAGE_BACKEND      = GetEnvOrDefault("STORAGE_BACKEND", "columnar")

	CRDB_DSN = os.Getenv("CRDB_DSN")

	// REDIS_ADDR selects the redis catalog when CRDB_DSN is not set
	REDIS_ADDR      = os.Getenv("REDIS_ADDR")
	REDIS_PASSWORD  = os.Getenv("REDIS_PASSWORD")
	REDIS_PING_TEST = os.Getenv("REDIS_PING_TEST") == "1"

	// DATASTORE is either "disk" or "s3"
	DATASTORE = GetEnvOrDefault("DATASTORE", "disk")
	DATA_ROOT = GetEnvOrDefault("DATA_ROOT", "./data")

	AWS_ACCESS_KEY_ID     = os.Getenv("AWS_ACCESS_KEY_ID")
	AWS_SECRET_ACCESS_KEY = os.Getenv("AWS_SECRET_ACCESS_KEY")
	AWS_DEFAULT_REGION    = GetEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1")

	S3_BUCKET_NAME = os.Getenv("S3_BUCKET_NAME")
	S3_ENDPOINT    = os.Getenv("S3_ENDPOINT")

	HTTP_PORT          = GetEnvOrDefault("HTTP_PORT", "8080")
	SHUTDOWN_SLEEP_SEC = GetEnvOrDefaultInt("SHUTDOWN_SLEEP_SEC", 0)
)

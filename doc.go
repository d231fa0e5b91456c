// Package stowgate provides a small upload gateway in front of an object
// store and an optional relational row store.
//
// Uploads follow a two-phase protocol. A caller first asks for an upload
// ticket (Prepare), which derives a unique storage key from a path hint and
// an extension. The caller then sends the raw bytes against that key (Put),
// which streams them into the configured ObjectStore.
//
// # Key Components
//
//   - UploadService: Prepare and Put, the two phases of an upload
//   - DiagnosticsService: user count and table listing over a RowStore
//   - ObjectStore: interface for byte storage (filesystem, S3, MinIO)
//   - RowStore: interface for SQL queries (SQLite, PostgreSQL)
//
// Both backing stores are optional. A nil ObjectStore makes every upload
// fail with ErrNotConfigured; a nil RowStore makes every query return an
// empty result set.
//
// # Example Usage
//
//	uploads := stowgate.NewUploadService(store, stowgate.UploadConfig{
//	    PublicBaseURL: "https://assets.example.com",
//	})
//
//	ticket, err := uploads.Prepare(ctx, stowgate.PrepareRequest{
//	    PathHint:    "brand/logos/",
//	    ContentType: "image/webp",
//	    Ext:         "webp",
//	})
//
//	result, err := uploads.Put(ctx, stowgate.PutRequest{
//	    Key:         ticket.Key,
//	    ContentType: "image/webp",
//	    Size:        size,
//	}, body)
//
// See the http package for the REST API and the filesystem, s3store,
// miniostore and database packages for the backends.
package stowgate

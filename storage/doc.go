// Package storage holds model artifacts and reference recordings behind a
// small object-store interface.
//
// # Backends
//
//   - storage/local: a directory on disk (default ./data)
//   - storage/s3: Amazon S3 or an S3-compatible endpoint such as MinIO
//
// Backends register themselves on import; New picks one by name.
//
//	storage:
//	  provider: "s3"
//	  bucket: "pronounce-models"
//	  region: "eu-central-1"
//
// A missing object is reported as ErrNotFound on every backend, which the
// model store relies on to tell "not trained yet" from a broken bucket.
package storage

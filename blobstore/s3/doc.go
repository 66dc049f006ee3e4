// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "sieves/")
//	err := sv.Save(ctx, store, "1e9.wsnp")
//
// # Features
//
//   - Range reads for streaming snapshot loads
//   - Multipart uploads with CRC32C integrity checks
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3

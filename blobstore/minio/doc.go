// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client and also works with other S3-compatible servers
// such as Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minioblob.New(minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "sieves", "bench/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = sv.Save(ctx, store, "1e8.wsnp")
//
// Use NewStore to supply a preconfigured *minio.Client instead.
package minio

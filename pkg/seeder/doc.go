// Package seeder runs the two image batches that populate the sample
// application's media directory.
//
// A run is strictly sequential:
//
//  1. the output directory is created (failure aborts the run)
//  2. every travel image is fetched from the placeholder service
//  3. every profile image is fetched from the face service, falling back
//     to the placeholder service when that attempt fails
//
// Individual image failures are logged and counted but never stop a batch.
// Canceling the context stops the run before the next image starts and
// interrupts any request or pause in progress.
//
// Usage:
//
//	s := seeder.New(cfg)
//	tally, err := s.Run(ctx)
//	if errs.IsCanceled(err) {
//	    // interrupted
//	}
package seeder

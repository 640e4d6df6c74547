// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest parses bulk poll imports from CSV.

ParseRows turns an uploaded file into a list of ImportRow values, each
either a ValidRow ready to become a poll or a SkippedRow naming the line
and why it was rejected. One bad line never aborts the file. The package
is pure parsing; wiring valid rows into the store is the handler's job.
*/
package ingest

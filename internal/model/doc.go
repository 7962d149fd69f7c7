// Package model defines the data passed between the pipeline steps: format
// records reported by an extractor, the deduplicated resolution list, the
// download request and the progress status records.
package model

package main

// summarizeVersion runs one pipeline variant end to end over a file.
type summarizeVersion func(path string, maxBytes int64, workers int) (string, error)

// summarizeVersions is ordered oldest to fastest; bench, base and profile
// select variants by index. Every variant produces byte-identical output on
// valid input.
var summarizeVersions = []summarizeVersion{
	summarizeV0,
	summarizeV1,
	summarizeV2,
}

// Summarize computes, per distinct key of the file's key;value records, the
// minimum, mean and maximum, and renders them as a single sorted summary
// string. maxBytes < 0 processes the whole file; otherwise the record
// containing byte offset maxBytes is the last one included. workers must be
// at least 1.
func Summarize(path string, maxBytes int64, workers int) (string, error) {
	return summarizeV2(path, maxBytes, workers)
}

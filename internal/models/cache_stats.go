package models

// CacheStats is the diagnostic view of one cache map. ValidEntries counts
// fresh entries, ExpiredEntries counts expired ones still retained as
// fallback material. Entries past their purge threshold are not counted
// at all, whether or not the sweep has physically removed them yet.
type CacheStats struct {
	TotalEntries   int `json:"totalEntries"`
	ValidEntries   int `json:"validEntries"`
	ExpiredEntries int `json:"expiredEntries"`
}

package pstr

import "sync"

// defaultStore is created on first use and lives until the process exits.
var defaultStore = sync.OnceValue(func() *Store {
	return New(WithInitialCapacity(1 << 14))
})

// Default returns the process-wide Store used by the package-level helpers.
//
// Libraries that want isolated accounting, or tests that need a fresh
// table, should create their own Store with New and pass it around instead.
func Default() *Store {
	return defaultStore()
}

// Intern interns b in the Default store.
func Intern(b []byte) (Handle, error) {
	return Default().Intern(b)
}

// InternString interns s in the Default store.
func InternString(s string) (Handle, error) {
	return Default().InternString(s)
}

// MustIntern interns s in the Default store and panics on error.
//
//	var keyID = pstr.MustIntern("id")
func MustIntern(s string) Handle {
	return Default().MustIntern(s)
}

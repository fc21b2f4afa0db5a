// Package conv provides checked integer conversions.
//
// The handle encoding packs block indices, offsets and lengths into fixed
// bit widths. These helpers reject values that would silently wrap when
// moving between Go's platform-sized int and the fixed-width fields.
//
// For conversions that are provably safe by construction (payload lengths
// already checked against the 256-byte cap, loop indices), use direct casts.
package conv

// Package wheel generates candidates coprime to 30 (the 2·3·5 wheel).
//
// Only 8 of every 30 integers can be prime once multiples of 2, 3 and 5 are
// skipped. Starting at 7 they are spaced by the repeating gap sequence
// 4,2,4,2,4,6,2,6, which halves to the Gaps table used here.
//
// Two cursor types walk the same table in different units:
//
//   - HalfCursor moves in half-index units (h represents 2h+1) and drives
//     prime discovery over the bit store.
//   - IntCursor moves over whole integers (gaps doubled) and drives counting.
//
// The cursors are independent values; there is no shared state between them.
package wheel

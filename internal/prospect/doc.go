// Package prospect holds the pure parts of the prospect list: the filter
// selector that backs each tab, the transient row selection, the QR scan
// payload format and fuzzy search. Nothing here touches storage.
package prospect

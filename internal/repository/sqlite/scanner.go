package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Slot is a single stored slot row
type Slot struct {
	Key       string
	Value     string
	UpdatedAt string
}

// ScanSlot scans a single slot from a database row
func ScanSlot(scanner Scanner) (*Slot, error) {
	slot := &Slot{}
	if err := scanner.Scan(&slot.Key, &slot.Value, &slot.UpdatedAt); err != nil {
		return nil, err
	}
	return slot, nil
}

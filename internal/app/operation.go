package app

// ConversionOp tracks a CLI operation that may mutate the store.
// Operations are created in memory with ID=0. Only store-mutating commands
// persist them (giving them an auto-increment ID from the database).
type ConversionOp struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewConversionOp creates a new in-memory conversion operation.
func NewConversionOp(operation, parameters string) *ConversionOp {
	return &ConversionOp{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *ConversionOp) Persisted() bool {
	return op.ID != 0
}

package object

// Record is a single packed object's entry in the Object Table. Position is
// the record's slot in the table and is the bit index used by every bitmap
// in the build; it is frozen once the Closure Loader returns.
type Record struct {
	ID         ID
	Kind       Kind
	Position   uint32
	NameHash   uint32 // zero until set by the Name-Hint Collector
	Referenced bool   // set when another commit names this commit as a parent
}

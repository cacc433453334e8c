package itembank

// Item is one calibrated entry in an item bank.
type Item struct {
	// ID is the stable identifier, unique within the bank.
	ID string

	// Model carries the item's response model and parameters.
	Model Model

	// Domain is an optional content tag used for balancing constraints.
	Domain string

	// Text is the optional item stimulus shown by a presentation layer.
	// The engine never inspects it.
	Text string
}

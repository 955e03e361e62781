package events

// Event is a community event. CreatedBy never changes after creation and is
// the only identity allowed to update or delete the record. Participants
// holds joining user ids in insertion order, without duplicates.
type Event struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	CreatedBy    int64   `json:"createdBy"`
	Participants []int64 `json:"participants"`
}

type CreateParams struct {
	Title       string
	Description string
	Date        string
	CreatedBy   int64
}

// UpdateParams is a partial update. A field is applied only when non-empty;
// an explicit empty string leaves the stored value untouched. This mirrors
// the behavior clients have always relied on, even though it means a field
// can never be cleared.
type UpdateParams struct {
	Title       string
	Description string
	Date        string
}
